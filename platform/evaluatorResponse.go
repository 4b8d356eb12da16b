package platform

import "github.com/robbyt/go-aspect/platform/data"

// EvaluatorResponse is the result of one interpretation run. An Aspect run has
// no return value of its own; the response carries the run's collected errors
// and execution metadata for host inspection.
type EvaluatorResponse interface {
	// Type of the run outcome: data.NONE for a clean run, data.ERROR when the
	// run's error log is non-empty.
	Type() data.Types

	// Inspect returns a short string representation of the run outcome.
	Inspect() string

	// Interface converts the outcome to a native Go value: the first collected
	// error, or nil for a clean run.
	Interface() any

	// GetScriptExeID returns the ID of the script version that produced this response.
	GetScriptExeID() string

	// GetExecTime returns the time it took to execute the script.
	GetExecTime() string
}
