package runtime

import (
	"context"

	"github.com/robbyt/go-aspect/platform/constants"
)

// WithDiagnostics returns a context that overrides the evaluator's
// debugging default for a single evaluation.
func WithDiagnostics(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, constants.Diagnostics, enabled)
}

// DiagnosticsFromContext returns the per-evaluation debugging override and
// whether one was set.
func DiagnosticsFromContext(ctx context.Context) (bool, bool) {
	enabled, ok := ctx.Value(constants.Diagnostics).(bool)
	return enabled, ok
}
