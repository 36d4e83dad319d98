package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "Warden - text-safety validation for a children's story generator",
	Long: `Warden is a deterministic, rule-based validation engine that sits in
front of a children's story generator. It screens the two child-facing
input surfaces before any text reaches story generation:

  - Free-text character names: prompt injection, inappropriate content
    (including leetspeak and homophone variants), Unicode obfuscation,
    and structural character rules
  - Controlled magic-word selections: approved-catalog membership and
    forbidden combinations

Validation is synchronous and in-memory; the audit trail records only
classifications and rule identifiers, never what a child typed.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
