package evaluator

import (
	"io"

	"github.com/robbyt/go-aspect/engines/aspect/runtime"
)

// Option configures an Evaluator during construction.
type Option func(*Evaluator)

// WithRegistry shares a function registry with the evaluator. Without this
// option each evaluator gets its own registry seeded with the built-ins.
func WithRegistry(registry *runtime.Registry) Option {
	return func(be *Evaluator) {
		if registry != nil {
			be.registry = registry
		}
	}
}

// WithOutput sets the destination for script output. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(be *Evaluator) {
		if w != nil {
			be.output = w
		}
	}
}

// WithSink sets the diagnostic sink that reported errors are forwarded to.
// Without this option forwarded errors are logged at error level.
func WithSink(sink runtime.Sink) Option {
	return func(be *Evaluator) {
		be.sink = sink
	}
}

// WithReporterBuffer sets the diagnostic queue depth. Values below one use
// the reporter default.
func WithReporterBuffer(size int) Option {
	return func(be *Evaluator) {
		be.reporterBuffer = size
	}
}

// WithDebugging sets the default debugging flag for evaluations, which
// starts enabled. A per-call override on the context wins over this value.
func WithDebugging(enabled bool) Option {
	return func(be *Evaluator) {
		be.debugging = enabled
	}
}
