package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   appName + " [command]",
	Short: "Run and explore Aspect scripts",
	Long: "Run and explore Aspect scripts.\n\n" +
		"Aspect is a line-oriented scripting dialect: each line declares a variable,\n" +
		"gates an action behind a numeric comparison, or calls a registered function.\n" +
		"Malformed lines never abort a run; logged errors are collected and reported.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
