package main

import (
	"fmt"
	"os"
)

var (
	flagConfig  string
	flagDebug   bool
	flagNoDebug bool
	flagNoColor bool
)

func main() {
	rootCmd.AddCommand(runCmd, evalCmd, replCmd, versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to a config file")
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging and diagnostics")
	pf.BoolVar(&flagNoDebug, "no-debug", false, "disable debug logging and diagnostics")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
