package evaluator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/robbyt/go-aspect/engines/aspect/internal/parse"
	"github.com/robbyt/go-aspect/engines/aspect/runtime"
	"github.com/robbyt/go-aspect/internal/helpers"
	"github.com/robbyt/go-aspect/platform"
	"github.com/robbyt/go-aspect/platform/data"
	"github.com/robbyt/go-aspect/platform/script"
)

// Evaluator runs classified Aspect programs. The registry is shared across
// evaluations while every Eval call gets fresh runtime state, so a single
// Evaluator is safe for concurrent use.
type Evaluator struct {
	// execUnit contains the compiled script and data provider
	execUnit *script.ExecutableUnit

	registry       *runtime.Registry
	reporter       *runtime.Reporter
	sink           runtime.Sink
	reporterBuffer int
	output         io.Writer
	debugging      bool

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a new Evaluator object
func New(handler slog.Handler, execUnit *script.ExecutableUnit, opts ...Option) *Evaluator {
	handler, logger := helpers.SetupLogger(handler, "aspect", "Evaluator")

	be := &Evaluator{
		execUnit:   execUnit,
		output:     os.Stdout,
		debugging:  true,
		logHandler: handler,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(be)
	}

	if be.registry == nil {
		be.registry = runtime.NewRegistry(handler)
	}
	be.reporter = runtime.NewReporter(handler, be.sink, be.reporterBuffer)

	return be
}

func (be *Evaluator) String() string {
	return "aspect.Evaluator"
}

// Registry returns the function registry used by this evaluator. Functions
// registered here are visible to every later evaluation.
func (be *Evaluator) Registry() *runtime.Registry {
	return be.registry
}

// Close flushes the diagnostic reporter and stops its delivery goroutine.
// The evaluator must not be used after Close.
func (be *Evaluator) Close() error {
	be.reporter.Close()
	return nil
}

// loadBindings retrieves initial variable bindings using the data provider
// in the executable unit.
func (be *Evaluator) loadBindings(ctx context.Context) (map[string]string, error) {
	logger := be.logger.WithGroup("loadBindings")

	// If no executable unit or data provider, return empty bindings
	if be.execUnit == nil || be.execUnit.GetDataProvider() == nil {
		logger.WarnContext(ctx, "no data provider available, using empty bindings")
		return make(map[string]string), nil
	}

	bindings, err := be.execUnit.GetDataProvider().GetBindings(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get bindings from provider", "error", err)
		return nil, err
	}

	logger.DebugContext(ctx, "bindings loaded from provider", "count", len(bindings))
	return bindings, nil
}

// exec walks the instruction list against fresh runtime state. The context
// is checked between instructions so a cancelled evaluation stops at the
// next line boundary.
func (be *Evaluator) exec(
	ctx context.Context,
	rt *runtime.Runtime,
	program *parse.Program,
) (*execResult, error) {
	startTime := time.Now()

	for i := range program.Instructions {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("aspect execution interrupted: %w", err)
		}
		be.dispatch(ctx, rt, &program.Instructions[i])
	}

	execTime := time.Since(startTime)
	return newEvalResult(be.logHandler, rt, execTime, ""), nil
}

// dispatch runs one instruction.
func (be *Evaluator) dispatch(
	ctx context.Context,
	rt *runtime.Runtime,
	ins *parse.Instruction,
) {
	switch ins.Kind {
	case parse.KindNoOp:
		// nothing matched this line

	case parse.KindDeclaration:
		rt.SetVariable(ins.Name, ins.Value)

	case parse.KindCall:
		be.dispatchCall(ctx, rt, ins.CallText, ins.Params, ins.Line)

	case parse.KindConditional:
		be.dispatchConditional(ctx, rt, ins)
	}
}

// dispatchCall resolves callText against the registry and invokes the
// match. An unmatched call is a silent no-op; only the debug log sees it.
func (be *Evaluator) dispatchCall(
	ctx context.Context,
	rt *runtime.Runtime,
	callText string,
	params []string,
	line int,
) {
	name, fn, ok := be.registry.Resolve(callText)
	if !ok {
		be.logger.DebugContext(ctx, "no registered function matches",
			"call", callText, "line", line)
		return
	}

	if err := be.invoke(ctx, rt, name, fn, params); err != nil {
		rt.ReportError(runtime.NewError(
			runtime.RuntimeError,
			line,
			fmt.Sprintf("%s: %v", name, err),
		))
	}
}

// dispatchConditional applies the pre-evaluated gate of an "if" line. A
// malformed header is the one classification failure that reaches the
// error log; every other closed gate is silent.
func (be *Evaluator) dispatchConditional(
	ctx context.Context,
	rt *runtime.Runtime,
	ins *parse.Instruction,
) {
	cond := ins.Cond
	if cond == nil {
		return
	}

	if cond.HeaderErr {
		rt.ReportError(runtime.NewError(
			runtime.SyntaxError,
			ins.Line,
			fmt.Sprintf("malformed condition in %q", ins.Raw),
		))
		return
	}
	if cond.CondErr || !cond.Result || cond.Action == nil {
		return
	}

	// A matched call wins the action; otherwise fall back to the
	// declaration reading.
	action := cond.Action
	if action.IsCall {
		if name, fn, ok := be.registry.Resolve(action.Text); ok {
			if err := be.invoke(ctx, rt, name, fn, action.Params); err != nil {
				rt.ReportError(runtime.NewError(
					runtime.RuntimeError,
					ins.Line,
					fmt.Sprintf("%s: %v", name, err),
				))
			}
			return
		}
	}
	if action.IsDecl {
		rt.SetVariable(action.Name, action.Value)
	}
}

// invoke runs fn and converts a panic into a returned error.
func (be *Evaluator) invoke(
	ctx context.Context,
	rt *runtime.Runtime,
	name string,
	fn runtime.Function,
	params []string,
) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in function %q: %v", name, rec)
		}
	}()
	return fn(ctx, params, rt)
}

// Eval runs the loaded program. Interpreter failures land in the response's
// error log; the returned error covers host-level problems only.
func (be *Evaluator) Eval(ctx context.Context) (platform.EvaluatorResponse, error) {
	logger := be.logger.WithGroup("Eval")
	if be.execUnit == nil {
		return nil, fmt.Errorf("executable unit is nil")
	}

	if be.execUnit.GetContent() == nil {
		return nil, fmt.Errorf("content is nil")
	}

	// Get the bytecode from the executable unit
	bytecode := be.execUnit.GetContent().GetByteCode()
	if bytecode == nil {
		return nil, fmt.Errorf("bytecode is nil")
	}

	// Get execution ID
	exeID := be.execUnit.GetID()
	if exeID == "" {
		return nil, fmt.Errorf("exeID is empty")
	}
	logger = logger.With("exeID", exeID)

	// 1. Type assert the bytecode into the aspect instruction program
	program, ok := bytecode.(*parse.Program)
	if !ok {
		return nil, fmt.Errorf(
			"invalid bytecode type: expected aspect program, got %T",
			bytecode,
		)
	}

	// 2. Get the initial variable bindings
	bindings, err := be.loadBindings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get input bindings: %w", err)
	}

	// 3. Prepare fresh runtime state for this evaluation
	debugging := be.debugging
	if override, ok := runtime.DiagnosticsFromContext(ctx); ok {
		debugging = override
	}
	rt := runtime.NewRuntime(
		be.logHandler,
		runtime.WithOutput(be.output),
		runtime.WithReporter(be.reporter),
		runtime.WithDebugging(debugging),
		runtime.WithVariables(bindings),
	)

	// 4. Execute the program
	result, err := be.exec(ctx, rt, program)
	if err != nil {
		return nil, fmt.Errorf("exec error: %w", err)
	}
	logger.DebugContext(ctx, "exec complete", "result", result)

	// 5. Collect results
	result.scriptExeID = exeID

	if errCount := len(result.Errors()); errCount > 0 {
		logger.DebugContext(ctx, "evaluation finished with logged errors",
			"count", errCount)
	}

	return result, nil
}

// AddBindingsToContext implements the data.Setter interface which stores
// and prepares runtime bindings which can be eventually passed to the Eval
// method.
func (be *Evaluator) AddBindingsToContext(
	ctx context.Context,
	bindings ...map[string]string,
) (context.Context, error) {
	logger := be.logger.WithGroup("AddBindingsToContext")

	// Use the shared helper function for context preparation
	if be.execUnit == nil || be.execUnit.GetDataProvider() == nil {
		return ctx, fmt.Errorf("no data provider available")
	}

	return data.AddBindingsToContextHelper(
		ctx,
		logger,
		be.execUnit.GetDataProvider(),
		bindings...,
	)
}
