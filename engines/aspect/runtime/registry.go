package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/robbyt/go-aspect/internal/helpers"
)

// Registry maps function names to host callables. It is shared between
// evaluations and safe for concurrent use; registered names persist until
// the registry is discarded.
type Registry struct {
	mu        sync.RWMutex
	functions map[string]Function

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewRegistry creates a registry pre-seeded with the print and Test
// built-ins. Registering either name again replaces the built-in.
func NewRegistry(handler slog.Handler) *Registry {
	handler, logger := helpers.SetupLogger(handler, "aspect", "Registry")

	r := &Registry{
		functions:  make(map[string]Function),
		logHandler: handler,
		logger:     logger,
	}
	r.registerBuiltins()
	return r
}

func (r *Registry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fmt.Sprintf("aspect.Registry{Functions: %d}", len(r.functions))
}

// Register adds or replaces a named function.
func (r *Registry) Register(name string, fn Function) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return ErrNilFunction
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[name] = fn
	r.logger.Debug("function registered", "name", name)
	return nil
}

// Resolve returns the registered function whose name is the longest prefix
// of callText. Longer names win so that overlapping registrations stay
// deterministic.
func (r *Registry) Resolve(callText string) (string, Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bestName := ""
	var bestFn Function
	for name, fn := range r.functions {
		if strings.HasPrefix(callText, name) && len(name) > len(bestName) {
			bestName = name
			bestFn = fn
		}
	}

	if bestName == "" {
		return "", nil, false
	}
	return bestName, bestFn, true
}

// Names returns the registered function names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.functions))
}

// Report summarizes one Distribute pass over a batch of function
// candidates.
type Report struct {
	// Distributions counts candidates that were registered.
	Distributions int

	// Incomplete counts candidates that carried a name but no usable
	// callable.
	Incomplete int

	// MissingData counts candidates lacking a name or a main entry.
	MissingData int

	// Issue holds the fault that stopped the batch, or empty when every
	// candidate was examined.
	Issue string
}

func (r *Report) String() string {
	s := fmt.Sprintf(
		"Distributions: %d, Unsuccessful: %d, Malformed Functions: %d",
		r.Distributions, r.Incomplete, r.MissingData)
	if r.Issue != "" {
		s += fmt.Sprintf(", Issue: %s", r.Issue)
	}
	return s
}

// Distribute registers a batch of function candidates. Each candidate must
// be a map holding a "name" string and a "main" callable with the Function
// signature. A candidate that is not a map is an unrecoverable fault: the
// batch stops there and later candidates are not examined.
func (r *Registry) Distribute(candidates []any) *Report {
	report := &Report{}

	defer func() {
		if rec := recover(); rec != nil {
			report.Issue = fmt.Sprintf("%v", rec)
			r.logger.Warn("distribute batch panicked", "recover", rec)
		}
	}()

	for i, candidate := range candidates {
		entry, ok := candidate.(map[string]any)
		if !ok {
			report.Issue = fmt.Sprintf("candidate %d is %T, not a map", i, candidate)
			r.logger.Warn("distribute batch stopped", "issue", report.Issue)
			return report
		}

		name, nameOK := entry["name"].(string)
		main, mainOK := entry["main"]
		if !nameOK || name == "" || !mainOK {
			report.MissingData++
			continue
		}

		fn := asFunction(main)
		if fn == nil {
			report.Incomplete++
			continue
		}

		if err := r.Register(name, fn); err != nil {
			report.Incomplete++
			continue
		}
		report.Distributions++
	}
	return report
}

// asFunction accepts both the named Function type and a bare func with the
// same signature.
func asFunction(main any) Function {
	switch fn := main.(type) {
	case Function:
		return fn
	case func(ctx context.Context, params []string, rt *Runtime) error:
		return fn
	default:
		return nil
	}
}
