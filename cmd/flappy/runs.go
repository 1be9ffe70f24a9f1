package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy/internal/platform/tui"
	"github.com/vovakirdan/flappy/internal/storage"
)

var (
	flagRunsLimit int
	flagBrowse    bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List journaled runs",
	Long: `Display the most recent runs in the journal, newest first.

With --browse, pick a run in an interactive table and replay it.

Examples:
  flappy runs
  flappy runs --limit 50
  flappy runs --browse --journal ./journal.db`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
	runsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse runs interactively")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(journalPath())
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(flagRunsLimit)
	if err != nil {
		return err
	}

	if !flagBrowse {
		printRuns(cmd.OutOrStdout(), runs)
		return nil
	}

	width, height := terminalSize()
	id, err := tui.RunJournalBrowser(runs, width, height)
	if err != nil {
		return fmt.Errorf("running journal browser: %w", err)
	}
	if id == "" {
		return nil
	}

	logger, closeLog, err := newLogger(flagLogFile, flagDebug)
	if err != nil {
		return err
	}
	defer closeLog()
	return replayRun(cmd.OutOrStdout(), store, id, logger)
}

// printRuns writes the runs as a plain-text table.
func printRuns(w io.Writer, runs []storage.Run) {
	fmt.Fprintln(w, "Journaled runs")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs journaled yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play with 'flappy --journal <path>' to record one.")
		return
	}

	const format = "  %-8s  %-20s  %-6s  %-5s  %-8s  %s\n"
	fmt.Fprintf(w, format, "Run", "Seed", "Ticks", "Jumps", "Status", "Date")
	fmt.Fprintf(w, format, "---", "----", "-----", "-----", "------", "----")
	for _, r := range runs {
		row := tui.JournalRow(r)
		fmt.Fprintf(w, format, row[0], row[1], row[2], row[3], row[4], row[5])
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'flappy replay <run>' to replay a run.")
}
