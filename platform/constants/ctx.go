// Description: This file contains constants used for accessing values from context objects.
package constants

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// EvalData is the key used to store per-call variable bindings in the context,
	// read by the ContextProvider during evaluation. Load with ctx.Value().
	EvalData ContextKey = "eval_data"

	// Diagnostics is the key used for the per-call diagnostic override. When set,
	// its boolean value wins over the evaluator's configured default.
	Diagnostics ContextKey = "eval_diagnostics"
)
