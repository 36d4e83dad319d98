package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storyforge-hq/warden/pkg/cli"
	"storyforge-hq/warden/pkg/safety"
)

var nameFlags struct {
	session string
	format  string
}

var nameCmd = &cobra.Command{
	Use:   "name <raw-name>",
	Short: "Validate a character name",
	Long: `Validate a free-text character name through the full safety pipeline:
rate-limit check, length and character rules, bypass detection, and
pattern matching.

The command exits non-zero when the name is rejected, so it can be used
in scripts.

Examples:
  # Validate a name
  warden name "Alice"

  # Validate with an explicit session (rate limiting is per session)
  warden name "Alice" --session child-42

  # JSON output
  warden name "Alice" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: validateName,
}

func init() {
	rootCmd.AddCommand(nameCmd)

	nameCmd.Flags().StringVarP(&nameFlags.session, "session", "s", "cli", "session identifier")
	nameCmd.Flags().StringVar(&nameFlags.format, "format", "text", "output format: text, json")
}

func validateName(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return cli.NewCommandError("name", err)
	}
	defer e.Close()

	result := e.controller.ValidateName(args[0], nameFlags.session)
	printResult(result, nameFlags.format)

	if !result.IsValid {
		// Flush the audit event before exiting non-zero.
		e.Close()
		os.Exit(1)
	}
	return nil
}

// printResult renders a validation result in the selected format.
func printResult(result safety.ValidationResult, format string) {
	if format == "json" {
		cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, result)
		return
	}

	if result.IsValid {
		fmt.Printf("valid: %q\n", result.SanitizedText)
		return
	}
	fmt.Printf("rejected (%s): %s\n", result.ErrorKind, result.ChildMessage)
	for _, flag := range result.SecurityFlags {
		fmt.Printf("  flag: %s\n", flag)
	}
}
