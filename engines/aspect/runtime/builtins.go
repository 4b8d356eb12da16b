package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// registerBuiltins seeds the function table. Callers hold no lock yet, so
// this runs before the registry is published.
func (r *Registry) registerBuiltins() {
	r.functions["print"] = printBuiltin
	r.functions["Test"] = testBuiltin
}

// printBuiltin resolves each parameter and writes it to the run's output,
// one per line. An unresolvable variable reference prints the invalid
// variable marker instead of failing the call.
func printBuiltin(_ context.Context, params []string, rt *Runtime) error {
	for _, param := range params {
		value, err := rt.Resolve(param)
		if err != nil {
			if !errors.Is(err, ErrInvalidVariable) {
				return err
			}
			value = "invalid variable"
		}

		if _, err := fmt.Fprintln(rt.Output(), value); err != nil {
			return fmt.Errorf("write failed: %w", err)
		}
	}
	return nil
}

// testBuiltin writes a fixed confirmation including the current time, used
// to verify that registry dispatch is wired up.
func testBuiltin(_ context.Context, _ []string, rt *Runtime) error {
	_, err := fmt.Fprintf(
		rt.Output(),
		"Test function executed successfully at %s\n",
		time.Now().Format(time.RFC1123),
	)
	return err
}
