package platform

import (
	"context"

	"github.com/robbyt/go-aspect/platform/data"
)

// EvalOnly is the interface for the generic script evaluator.
type EvalOnly interface {
	// Eval interprets the pre-compiled script with bindings from the context.
	// The script and its configuration were provided during evaluator creation.
	// Initial variable bindings are retrieved using the ExecutableUnit's Provider.
	//
	// This design encourages the "compile once, run many times" pattern,
	// where script compilation (cheap here, but stateful) is separated from
	// execution. Each Eval call runs against a fresh runtime: variables and the
	// error log never leak between calls. For per-call bindings, use a
	// ContextProvider with the constants.EvalData key.
	Eval(ctx context.Context) (EvaluatorResponse, error)
}

// Evaluator combines the EvalOnly and data.Setter interfaces, providing a
// unified API for binding preparation and script evaluation. It allows these
// steps to be performed separately while maintaining their logical connection.
type Evaluator interface {
	EvalOnly
	data.Setter
}
