package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"storyforge-hq/warden/pkg/cli"
)

var selectionFlags struct {
	session    string
	categories string
	format     string
}

var selectionCmd = &cobra.Command{
	Use:   "selection <word> <word> <word>",
	Short: "Validate a magic-word selection",
	Long: `Validate a controlled magic-word selection against the approved
catalog and the forbidden-combination table.

Each word is checked for membership in its claimed category; the claimed
categories are given positionally via --categories.

Examples:
  # Validate a selection
  warden selection dragon castle happy --categories creatures,places,moods

  # JSON output
  warden selection dragon castle happy --categories creatures,places,moods --format json`,
	Args: cobra.ExactArgs(3),
	RunE: validateSelection,
}

func init() {
	rootCmd.AddCommand(selectionCmd)

	selectionCmd.Flags().StringVarP(&selectionFlags.session, "session", "s", "cli", "session identifier")
	selectionCmd.Flags().StringVar(&selectionFlags.categories, "categories", "", "comma-separated claimed categories, one per word (required)")
	selectionCmd.Flags().StringVar(&selectionFlags.format, "format", "text", "output format: text, json")
	selectionCmd.MarkFlagRequired("categories")
}

func validateSelection(cmd *cobra.Command, args []string) error {
	categories := strings.Split(selectionFlags.categories, ",")
	if len(categories) != len(args) {
		return fmt.Errorf("--categories must name %d categories, got %d", len(args), len(categories))
	}

	e, err := newEngine()
	if err != nil {
		return cli.NewCommandError("selection", err)
	}
	defer e.Close()

	result := e.controller.ValidateSelection(args, categories, selectionFlags.session)
	printResult(result, selectionFlags.format)

	if !result.IsValid {
		// Flush the audit event before exiting non-zero.
		e.Close()
		os.Exit(1)
	}
	return nil
}
