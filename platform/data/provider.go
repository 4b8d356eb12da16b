package data

import (
	"context"
)

// Getter defines the interface for retrieving variable bindings from a context.
type Getter interface {
	GetBindings(ctx context.Context) (map[string]string, error)
}

// Setter prepares variable bindings for script evaluation by enriching a context.
// This interface supports separating data preparation from evaluation, enabling
// architectures where these steps occur at different call sites.
type Setter interface {
	// AddBindingsToContext enriches a context with variable bindings for script
	// evaluation. Bindings are stored in the context through the ExecutableUnit's
	// DataProvider and seeded into the run's variable table before the first
	// line executes.
	//
	// The variadic bindings parameter accepts maps of variable names to string
	// values. Later maps override earlier ones for duplicate names.
	//
	// Example:
	//  seed := map[string]string{"greeting": "Hello, World!"}
	//  enrichedCtx, err := evaluator.AddBindingsToContext(ctx, seed)
	//  if err != nil {
	//      return err
	//  }
	//  result, err := evaluator.Eval(enrichedCtx)
	AddBindingsToContext(ctx context.Context, bindings ...map[string]string) (context.Context, error)
}

// Provider defines the interface for accessing variable bindings for script execution.
type Provider interface {
	// Getter retrieves associated bindings from a context during script eval.
	Getter

	// Setter enriches a context with a link to bindings, allowing the script
	// to read them through the ExecutableUnit's DataProvider.
	Setter
}
