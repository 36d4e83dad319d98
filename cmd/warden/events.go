package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"storyforge-hq/warden/pkg/audit"
	"storyforge-hq/warden/pkg/audit/retention"
	"storyforge-hq/warden/pkg/audit/storage"
	"storyforge-hq/warden/pkg/cli"
)

var eventsFlags struct {
	session string
	kind    string
	since   string
	limit   int
	format  string
	prune   bool
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Query the audit trail",
	Long: `Query recorded security events. Events carry classifications and rule
identifiers only — nothing a child typed is ever stored.

Examples:
  # Recent events
  warden events --limit 20

  # Events for one session
  warden events --session child-42

  # Injection attempts in the last day
  warden events --kind prompt_injection --since 24h

  # Run retention pruning now
  warden events --prune`,
	RunE: queryEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.Flags().StringVar(&eventsFlags.session, "session", "", "filter by session identifier")
	eventsCmd.Flags().StringVar(&eventsFlags.kind, "kind", "", "filter by event kind")
	eventsCmd.Flags().StringVar(&eventsFlags.since, "since", "", "only events newer than this age (e.g. 24h)")
	eventsCmd.Flags().IntVar(&eventsFlags.limit, "limit", 50, "maximum events to return")
	eventsCmd.Flags().StringVar(&eventsFlags.format, "format", "text", "output format: text, json")
	eventsCmd.Flags().BoolVar(&eventsFlags.prune, "prune", false, "run retention pruning instead of querying")
}

func queryEvents(cmd *cobra.Command, args []string) error {
	cfg, err := loadEngineConfig()
	if err != nil {
		return cli.NewCommandError("events", err)
	}

	if !cfg.Audit.Enabled {
		return fmt.Errorf("audit is disabled in configuration")
	}
	if cfg.Audit.Backend != "sqlite" {
		return fmt.Errorf("events command requires the sqlite audit backend, got %q", cfg.Audit.Backend)
	}

	store, err := storage.NewSQLiteStorage(cfg.Audit.SQLite)
	if err != nil {
		return cli.NewCommandError("events", err)
	}
	defer store.Close()

	ctx := context.Background()

	if eventsFlags.prune {
		removed, err := retention.NewPruner(store, cfg.Audit.Retention).Prune(ctx)
		if err != nil {
			return cli.NewCommandError("events", err)
		}
		fmt.Printf("pruned %d event(s)\n", removed)
		return nil
	}

	q := audit.Query{
		SessionID: eventsFlags.session,
		Kind:      eventsFlags.kind,
		Limit:     eventsFlags.limit,
	}
	if eventsFlags.since != "" {
		age, err := time.ParseDuration(eventsFlags.since)
		if err != nil {
			return fmt.Errorf("invalid --since duration: %w", err)
		}
		q.Since = time.Now().UTC().Add(-age)
	}

	events, err := store.Query(ctx, q)
	if err != nil {
		return cli.NewCommandError("events", err)
	}

	if eventsFlags.format == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, events)
	}

	if len(events) == 0 {
		fmt.Println("no events")
		return nil
	}
	for _, ev := range events {
		fmt.Printf("%s  %-28s session=%s rules=[%s]\n",
			ev.Timestamp.Format(time.RFC3339),
			ev.Kind,
			ev.SessionID,
			strings.Join(ev.RuleIDs, " "),
		)
	}
	return nil
}
