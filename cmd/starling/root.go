package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for starling.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "starling",
		Short: "Frank-Starling curve analysis for volume loading data",
		Long: `starling analyzes the relationship between ventricular preload and
hemodynamic response using a 4-parameter logistic model.

It fits the model to (IV volume, ΔVTI) measurements from a two-column CSV
file and reports the fitted parameters (baseline, plateau, optimal preload,
steepness) together with derived clinical metrics such as cardiac reserve
and preload sensitivity.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
