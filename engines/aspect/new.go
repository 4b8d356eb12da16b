package aspect

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-aspect/engines/aspect/compiler"
	"github.com/robbyt/go-aspect/engines/aspect/evaluator"
	"github.com/robbyt/go-aspect/platform/constants"
	"github.com/robbyt/go-aspect/platform/data"
	"github.com/robbyt/go-aspect/platform/script"
	"github.com/robbyt/go-aspect/platform/script/loader"
)

// FromAspectLoader creates an Aspect evaluator from a loader with dynamic data only (ContextProvider)
//
// Input parameters:
// - logHandler: logger handler for logging
// - ldr: loader implementation for loading the Aspect script content
// - opts: optional evaluator settings such as output writer and error sink
//
// Returns an evaluator, which implements the platform.Evaluator interface.
func FromAspectLoader(
	logHandler slog.Handler,
	ldr loader.Loader,
	opts ...evaluator.Option,
) (*evaluator.Evaluator, error) {
	return NewEvaluator(
		logHandler,
		ldr,
		data.NewContextProvider(constants.EvalData),
		opts...,
	)
}

// FromAspectLoaderWithData creates an Aspect evaluator with both static and dynamic data
// capabilities. To add runtime data, use the `AddBindingsToContext` method on the evaluator
// to add data to the context.
//
// Input parameters:
// - logHandler: logger handler for logging
// - ldr: loader implementation for loading the Aspect script content
// - staticData: map of initial variables seeded into every run
// - opts: optional evaluator settings such as output writer and error sink
//
// Returns an evaluator, which implements the platform.Evaluator interface.
func FromAspectLoaderWithData(
	logHandler slog.Handler,
	ldr loader.Loader,
	staticData map[string]string,
	opts ...evaluator.Option,
) (*evaluator.Evaluator, error) {
	staticProvider := data.NewStaticProvider(staticData)
	dynamicProvider := data.NewContextProvider(constants.EvalData)
	compositeProvider := data.NewCompositeProvider(staticProvider, dynamicProvider)

	return NewEvaluator(
		logHandler,
		ldr,
		compositeProvider,
		opts...,
	)
}

// NewCompiler creates a new Aspect compiler using the functional options pattern.
// Returns a compiler implementing the script.Compiler interface.
func NewCompiler(opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	return compiler.New(opts...)
}

// NewEvaluator creates an Aspect evaluator with the instruction program loaded, and ready
// for execution. Returns an Evaluator, which implements the platform.Evaluator interface.
func NewEvaluator(
	logHandler slog.Handler,
	ldr loader.Loader,
	dataProvider data.Provider,
	opts ...evaluator.Option,
) (*evaluator.Evaluator, error) {
	if dataProvider == nil {
		return nil, fmt.Errorf("provider is nil")
	}

	compiler, err := NewCompiler()
	if err != nil {
		return nil, fmt.Errorf("failed to create Aspect compiler: %w", err)
	}

	execUnitID := ""
	sourceURL := ldr.GetSourceURL()
	if sourceURL != nil {
		execUnitID = sourceURL.String()
	}

	// Create executable unit (to compile and prepare the script)
	execUnit, err := script.NewExecutableUnit(
		logHandler,
		execUnitID,
		ldr,
		compiler,
		dataProvider,
	)
	if err != nil {
		return nil, err
	}

	return evaluator.New(logHandler, execUnit, opts...), nil
}
