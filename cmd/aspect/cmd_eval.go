package main

import (
	"fmt"
	"os"

	aspect "github.com/robbyt/go-aspect"
	"github.com/robbyt/go-aspect/engines/aspect/evaluator"
	"github.com/spf13/cobra"
)

var evalVars []string

var evalCmd = &cobra.Command{
	Use:   "eval SOURCE",
	Short: "Run Aspect source given as an argument",
	Long: "Run Aspect source passed directly on the command line. Useful for\n" +
		"one-liners; multi-line scripts can be passed with shell quoting.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flagConfig)
		if err != nil {
			return err
		}
		cfg = cfg.withFlags()
		st := newStyles(cfg.NoColor)
		handler := newHandler(cfg)

		seed, err := parseVarFlags(evalVars)
		if err != nil {
			return err
		}

		opts := []evaluator.Option{
			evaluator.WithOutput(os.Stdout),
			evaluator.WithDebugging(cfg.Debug),
		}
		var ev *evaluator.Evaluator
		if len(seed) > 0 {
			ev, err = aspect.FromStringWithData(args[0], seed, handler, opts...)
		} else {
			ev, err = aspect.FromString(args[0], handler, opts...)
		}
		if err != nil {
			return err
		}

		logged, err := executeScript(cmd.Context(), ev, st)
		if err != nil {
			return err
		}
		if logged > 0 {
			return fmt.Errorf("%d script error(s) logged", logged)
		}
		return nil
	},
}

func init() {
	evalCmd.Flags().StringArrayVar(&evalVars, "var", nil,
		"seed a variable as name=value (repeatable)")
}
