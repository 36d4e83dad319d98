package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storyforge-hq/warden/pkg/cli"
	"storyforge-hq/warden/pkg/usage"
)

var usageFlags struct {
	category string
	limit    int
	format   string
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show magic-word popularity",
	Long: `Show aggregate selection counts for approved magic words. Counts are
recorded best-effort whenever a selection is accepted.

Examples:
  # Most popular words across all categories
  warden usage

  # Most popular creatures
  warden usage --category creatures --limit 5`,
	RunE: showUsage,
}

func init() {
	rootCmd.AddCommand(usageCmd)

	usageCmd.Flags().StringVar(&usageFlags.category, "category", "", "restrict to one category")
	usageCmd.Flags().IntVar(&usageFlags.limit, "limit", 10, "maximum words to show")
	usageCmd.Flags().StringVar(&usageFlags.format, "format", "text", "output format: text, json")
}

func showUsage(cmd *cobra.Command, args []string) error {
	cfg, err := loadEngineConfig()
	if err != nil {
		return cli.NewCommandError("usage", err)
	}
	if !cfg.Usage.Enabled {
		return fmt.Errorf("usage counting is disabled in configuration")
	}

	store, err := usage.NewStore(cfg.Usage)
	if err != nil {
		return cli.NewCommandError("usage", err)
	}
	defer store.Close()

	top, err := store.Top(context.Background(), usageFlags.category, usageFlags.limit)
	if err != nil {
		return cli.NewCommandError("usage", err)
	}

	if usageFlags.format == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, top)
	}

	if len(top) == 0 {
		fmt.Println("no usage recorded")
		return nil
	}
	for _, wc := range top {
		fmt.Printf("%6d  %-12s %s\n", wc.Count, wc.Category, wc.Word)
	}
	return nil
}
