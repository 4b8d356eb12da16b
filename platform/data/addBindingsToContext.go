package data

import (
	"context"
	"fmt"
	"log/slog"
)

// AddBindingsToContextHelper is a utility function that implements the common
// logic for attaching variable bindings to a context for evaluation. Engine
// implementations share this function to keep binding handling consistent.
//
// Parameters:
//   - ctx: The base context to enrich
//   - logger: A logger instance for recording operations
//   - provider: The data provider to use for storing bindings
//   - bindings: Variable list of binding maps to add to the context
//
// Returns:
//   - enrichedCtx: The context with added bindings
//   - err: Any error encountered during the operation
func AddBindingsToContextHelper(
	ctx context.Context,
	logger *slog.Logger,
	provider Provider,
	bindings ...map[string]string,
) (context.Context, error) {
	if logger == nil {
		// TODO: remove or use logger more effectively
		logger = slog.Default()
	}

	if provider == nil {
		logger.WarnContext(ctx, "no data provider available for context preparation")
		return ctx, fmt.Errorf("no data provider available")
	}

	// Use the data provider plugin to store the raw bindings
	enrichedCtx, err := provider.AddBindingsToContext(ctx, bindings...)
	if err != nil {
		return ctx, fmt.Errorf("failed to prepare context: %w", err)
	}

	return enrichedCtx, err
}
