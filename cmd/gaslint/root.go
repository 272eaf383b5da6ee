// Package main provides the entry point for the gaslint CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for gaslint.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gaslint",
		Short: "Gas optimization linter for Solidity",
		Long: `gaslint is a static analysis tool that finds gas-inefficient patterns
in Solidity sources. Each finding names the optimization, the location,
and an estimate of the gas saved by fixing it.

Scan results are saved locally so later scans can be compared against
earlier ones to track how a codebase's gas profile changes over time.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewRulesCmd())
	cmd.AddCommand(NewExplainCmd())
	cmd.AddCommand(NewWatchCmd())
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
