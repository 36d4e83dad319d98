package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storyforge-hq/warden/pkg/audit/retention"
	"storyforge-hq/warden/pkg/cli"
	"storyforge-hq/warden/pkg/config"
)

var runFlags struct {
	session string
	format  string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Validate names interactively from stdin",
	Long: `Read character names from stdin, one per line, and print a validation
result for each. Intended for exploring rule behavior and for piping
test corpora through the engine.

While running, the configuration file is watched for changes; since
configuration is immutable for the lifetime of the process, a change
only produces a restart notice.

Examples:
  # Interactive session
  warden run

  # Pipe a corpus through the engine
  cat names.txt | warden run --format json`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.session, "session", "s", "cli", "session identifier")
	runCmd.Flags().StringVar(&runFlags.format, "format", "text", "output format: text, json")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer e.Close()

	ctx := cli.SetupSignalHandler()

	// Long-running sessions with a persistent audit backend also run the
	// scheduled retention pruner.
	if e.cfg.Audit.Enabled && e.cfg.Audit.Backend == "sqlite" {
		sched := retention.NewScheduler(retention.NewPruner(e.store, e.cfg.Audit.Retention))
		if err := sched.Start(ctx); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer sched.Stop()
	}

	// Watch the config file so an operator editing rules mid-session is
	// told the process must restart to pick them up.
	if _, statErr := os.Stat(cfgFile); statErr == nil {
		watcher, err := config.NewWatcher(cfgFile)
		if err == nil {
			go watcher.Watch(ctx, func() {
				fmt.Fprintln(os.Stderr, "configuration changed; restart warden to apply it")
			})
			defer watcher.Stop()
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return scanner.Err()
			}
			if line == "" {
				continue
			}
			result := e.controller.ValidateName(line, runFlags.session)
			printResult(result, runFlags.format)
		}
	}
}
