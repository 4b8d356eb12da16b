package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const appVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the " + appName + " version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(appVersion)
	},
}
