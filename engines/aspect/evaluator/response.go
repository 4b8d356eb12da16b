package evaluator

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/robbyt/go-aspect/engines/aspect/runtime"
	"github.com/robbyt/go-aspect/platform"
	"github.com/robbyt/go-aspect/platform/data"
)

// Result extends the platform response with the run's error log and final
// variable table.
type Result interface {
	platform.EvaluatorResponse

	// Errors returns the logged interpreter errors in append order.
	Errors() []*runtime.Error

	// FirstError returns the oldest logged error, or nil for a clean run.
	FirstError() *runtime.Error

	// Variables returns the final variable table of the run.
	Variables() map[string]string
}

// execResult is a snapshot of one evaluation's outcome.
type execResult struct {
	variables   map[string]string
	errs        []*runtime.Error
	execTime    time.Duration
	scriptExeID string
	logHandler  slog.Handler
	logger      *slog.Logger
}

var _ Result = (*execResult)(nil)

func newEvalResult(
	handler slog.Handler,
	rt *runtime.Runtime,
	execTime time.Duration,
	versionID string,
) *execResult {
	if handler == nil {
		defaultHandler := slog.NewTextHandler(os.Stdout, nil)
		handler = defaultHandler.WithGroup("aspect")
		// Create a logger from the handler rather than using slog directly
		defaultLogger := slog.New(handler)
		defaultLogger.Warn("Handler is nil, using the default logger configuration.")
	}

	return &execResult{
		variables:   rt.Variables(),
		errs:        rt.Errors(),
		execTime:    execTime,
		scriptExeID: versionID,
		logHandler:  handler,
		logger:      slog.New(handler.WithGroup("execResult")),
	}
}

func (r *execResult) String() string {
	return fmt.Sprintf(
		"ExecResult{Type: %s, Variables: %d, Errors: %d, ExecTime: %s, ScriptExeID: %s}",
		r.Type(), len(r.variables), len(r.errs), r.GetExecTime(), r.GetScriptExeID())
}

// Type reports ERROR when the run logged interpreter errors, NONE for a
// clean run.
func (r *execResult) Type() data.Types {
	if len(r.errs) > 0 {
		return data.ERROR
	}
	return data.NONE
}

// Inspect returns the first logged error text, or "none" for a clean run.
func (r *execResult) Inspect() string {
	if err := r.FirstError(); err != nil {
		return err.Error()
	}
	return "none"
}

// Interface returns the first logged error, or nil for a clean run.
func (r *execResult) Interface() any {
	if err := r.FirstError(); err != nil {
		return err
	}
	return nil
}

func (r *execResult) Errors() []*runtime.Error {
	return slices.Clone(r.errs)
}

func (r *execResult) FirstError() *runtime.Error {
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[0]
}

func (r *execResult) Variables() map[string]string {
	return maps.Clone(r.variables)
}

func (r *execResult) GetScriptExeID() string {
	return r.scriptExeID
}

func (r *execResult) GetExecTime() string {
	return r.execTime.String()
}
