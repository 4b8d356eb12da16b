package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	aspect "github.com/robbyt/go-aspect"
	"github.com/robbyt/go-aspect/engines/aspect/evaluator"
	"github.com/spf13/cobra"
)

var runVars []string

var runCmd = &cobra.Command{
	Use:   "run FILE...",
	Short: "Compile and run Aspect script files",
	Long: "Compile and run each Aspect script file in order. Script output goes to\n" +
		"stdout; logged script errors are printed to stderr after each run. The exit\n" +
		"code is non-zero when any script logged an error.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flagConfig)
		if err != nil {
			return err
		}
		cfg = cfg.withFlags()
		st := newStyles(cfg.NoColor)
		handler := newHandler(cfg)

		seed, err := parseVarFlags(runVars)
		if err != nil {
			return err
		}

		var logged int
		for _, file := range args {
			ev, err := newFileEvaluator(file, handler, cfg, seed)
			if err != nil {
				return err
			}
			n, err := executeScript(cmd.Context(), ev, st)
			if err != nil {
				return err
			}
			logged += n
		}

		if logged > 0 {
			return fmt.Errorf("%d script error(s) logged", logged)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringArrayVar(&runVars, "var", nil,
		"seed a variable as name=value (repeatable)")
}

func newFileEvaluator(
	file string,
	handler slog.Handler,
	cfg config,
	seed map[string]string,
) (*evaluator.Evaluator, error) {
	opts := []evaluator.Option{
		evaluator.WithOutput(os.Stdout),
		evaluator.WithDebugging(cfg.Debug),
	}
	if len(seed) > 0 {
		return aspect.FromFileWithData(file, seed, handler, opts...)
	}
	return aspect.FromFile(file, handler, opts...)
}

// executeScript runs one evaluator to completion, prints its logged errors,
// and returns how many there were.
func executeScript(ctx context.Context, ev *evaluator.Evaluator, st styles) (int, error) {
	defer ev.Close()

	resp, err := ev.Eval(ctx)
	if err != nil {
		return 0, err
	}

	result, ok := resp.(evaluator.Result)
	if !ok {
		return 0, fmt.Errorf("unexpected response type %T", resp)
	}

	errs := result.Errors()
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, st.err.Render(e.Error()))
	}
	return len(errs), nil
}

// parseVarFlags turns repeated name=value pairs into a binding map.
func parseVarFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q, expected name=value", p)
		}
		vars[name] = value
	}
	return vars, nil
}
