// Package cli implements the Gearline command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gearline",
	Short: "Gearline — kinetic network and machine-processing simulator",
	Long: `Gearline simulates a mechanical-power network for a voxel world.
Blocks act as power sources, transmission elements, and processing
machines; power propagates through adjacent blocks, accrues stress, and
drives per-machine recipe timers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
