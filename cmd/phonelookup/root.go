// Package main provides the entry point for the phonelookup CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for phonelookup.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phonelookup",
		Short: "Offline phone number analysis tool",
		Long: `phonelookup is an offline phone number analysis tool.

It parses a phone number, validates it against numbering plan metadata, and
reports its formats, geography, timezones, carrier, and dialing information.
All lookups run against bundled metadata; no network access is required and
no number ever leaves the machine.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewLookupCmd())
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
