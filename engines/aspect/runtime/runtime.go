package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/robbyt/go-aspect/internal/helpers"
)

// Function is a host callable that script lines can invoke through the
// registry. Parameters arrive unresolved; use Runtime.Resolve to expand
// variable references.
type Function func(ctx context.Context, params []string, rt *Runtime) error

// Runtime holds the mutable state of a single evaluation: the variable
// table, the error log, and the output destination. A Runtime is confined
// to one evaluation goroutine and must not be shared.
type Runtime struct {
	variables map[string]string
	errors    []*Error
	output    io.Writer
	debugging bool
	reporter  *Reporter

	logHandler slog.Handler
	logger     *slog.Logger
}

// RuntimeOption configures a Runtime during construction.
type RuntimeOption func(*Runtime)

// WithOutput sets the writer that functions like print deliver to.
func WithOutput(w io.Writer) RuntimeOption {
	return func(r *Runtime) {
		if w != nil {
			r.output = w
		}
	}
}

// WithReporter attaches the diagnostic reporter used for forwarded errors.
func WithReporter(rep *Reporter) RuntimeOption {
	return func(r *Runtime) {
		r.reporter = rep
	}
}

// WithDebugging overrides the debugging flag, which defaults to enabled.
func WithDebugging(enabled bool) RuntimeOption {
	return func(r *Runtime) {
		r.debugging = enabled
	}
}

// WithVariables seeds the variable table. The map is copied.
func WithVariables(vars map[string]string) RuntimeOption {
	return func(r *Runtime) {
		maps.Copy(r.variables, vars)
	}
}

// NewRuntime creates the state for one evaluation. Output defaults to
// stdout and debugging defaults to enabled.
func NewRuntime(handler slog.Handler, opts ...RuntimeOption) *Runtime {
	handler, logger := helpers.SetupLogger(handler, "aspect", "Runtime")

	rt := &Runtime{
		variables:  make(map[string]string),
		output:     os.Stdout,
		debugging:  true,
		logHandler: handler,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func (r *Runtime) String() string {
	return fmt.Sprintf(
		"aspect.Runtime{Variables: %d, Errors: %d, Debugging: %t}",
		len(r.variables), len(r.errors), r.debugging)
}

// SetVariable stores value under name, replacing any earlier value.
func (r *Runtime) SetVariable(name, value string) {
	r.variables[name] = value
	r.logger.Debug("variable stored", "name", name, "value", value)
}

// GetVariable returns the stored value for name.
func (r *Runtime) GetVariable(name string) (string, bool) {
	value, ok := r.variables[name]
	return value, ok
}

// Variables returns a copy of the current variable table.
func (r *Runtime) Variables() map[string]string {
	return maps.Clone(r.variables)
}

// Resolve maps a parameter token to its value. A token starting with "@"
// is a variable reference and resolves to the stored value; any other
// token is returned verbatim. An unknown reference returns
// ErrInvalidVariable.
func (r *Runtime) Resolve(token string) (string, error) {
	name, isRef := strings.CutPrefix(token, "@")
	if !isRef {
		return token, nil
	}

	value, ok := r.variables[name]
	if !ok {
		return "", fmt.Errorf("%w: @%s", ErrInvalidVariable, name)
	}
	return value, nil
}

// Output returns the writer that functions should deliver output to.
func (r *Runtime) Output() io.Writer {
	return r.output
}

// Debugging reports whether errors are forwarded to the diagnostic
// reporter.
func (r *Runtime) Debugging() bool {
	return r.debugging
}

// ReportError appends err to the run's error log and, when debugging is
// enabled, forwards its text to the diagnostic reporter.
func (r *Runtime) ReportError(err *Error) {
	if err == nil {
		return
	}

	r.errors = append(r.errors, err)
	if r.debugging && r.reporter != nil {
		r.reporter.Report(err.Error())
	}
}

// Errors returns a copy of the error log in append order.
func (r *Runtime) Errors() []*Error {
	return slices.Clone(r.errors)
}

// FirstError returns the oldest logged error, or nil for a clean run.
func (r *Runtime) FirstError() *Error {
	if len(r.errors) == 0 {
		return nil
	}
	return r.errors[0]
}
