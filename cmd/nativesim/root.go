// The nativesim command boots a native simulated target: it dispatches
// the staged boot tasks compiled into the binary, brings up the hardware
// models, and runs the simulated CPU.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "nativesim",
	Short: "nativesim runs an embedded program natively on the host, " +
		"dispatching its staged boot and exit tasks.",
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
