package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storyforge-hq/warden/pkg/cli"
	"storyforge-hq/warden/pkg/config"
)

var lintFlags struct {
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate a configuration file",
	Long: `Parse and validate a warden configuration file without starting the
engine. Checks performed:

  - YAML syntax
  - Rule table sanity (non-empty entries)
  - Category sizes (each category needs at least 20 approved words)
  - Forbidden-combination shape (exactly 3 distinct words each)
  - Rate-limit parameter consistency

Examples:
  # Lint the default config file
  warden lint

  # Lint a specific file
  warden lint --config configs/prod.yaml

  # JSON output for CI
  warden lint --format json`,
	RunE: lintConfig,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

type lintResult struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func lintConfig(cmd *cobra.Command, args []string) error {
	result := lintResult{File: cfgFile, Valid: true}

	_, err := config.LoadConfig(cfgFile)
	if err != nil {
		result.Valid = false

		var verr config.ValidationError
		if errors.As(err, &verr) {
			for _, fe := range verr.Errors {
				result.Errors = append(result.Errors, fe.Error())
			}
		} else {
			result.Errors = append(result.Errors, err.Error())
		}
	}

	if lintFlags.format == "json" {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, result); err != nil {
			return err
		}
	} else {
		if result.Valid {
			fmt.Printf("%s: OK\n", result.File)
		} else {
			fmt.Printf("%s: %d error(s)\n", result.File, len(result.Errors))
			for _, e := range result.Errors {
				fmt.Printf("  - %s\n", e)
			}
		}
	}

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}
