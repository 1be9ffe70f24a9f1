package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy/internal/assets"
	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/games/flappy"
	"github.com/vovakirdan/flappy/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <run>",
	Short: "Re-simulate a journaled run",
	Long: `Replay a journaled run headlessly and print how it went.

The run is looked up by its ID or any unique prefix of it. The game is
rebuilt from the configuration snapshot stored with the run, so a replay
matches the original even if your config file has changed since.

Examples:
  flappy replay 0b5c7a7e
  flappy replay 0b5c --journal ./journal.db`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(flagLogFile, flagDebug)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(journalPath())
	if err != nil {
		return err
	}
	defer store.Close()

	return replayRun(cmd.OutOrStdout(), store, args[0], logger)
}

// replayRun re-simulates the run with the given ID or prefix and prints a summary.
func replayRun(w io.Writer, store *storage.Store, id string, logger *log.Logger) error {
	run, err := store.Run(id)
	if err != nil {
		return err
	}

	cfg, err := runConfig(run)
	if err != nil {
		return err
	}

	sheet, err := assets.Load(flagSprites)
	if err != nil {
		return err
	}

	script := flappy.Script{
		Seed:   run.Seed,
		StartY: run.StartY,
		Jumps:  run.Jumps,
	}
	if run.Finished {
		script.MaxTicks = run.Ticks
	}

	res, err := flappy.Replay(cfg, sheet, script, flappy.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("replaying run: %w", err)
	}

	fmt.Fprintf(w, "Run %s\n", run.ID)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Seed:          %d\n", run.Seed)
	fmt.Fprintf(w, "  Start height:  %d\n", run.StartY)
	fmt.Fprintf(w, "  Jumps:         %d\n", len(run.Jumps))
	fmt.Fprintf(w, "  Ticks:         %d\n", res.Ticks)
	fmt.Fprintf(w, "  Pipes passed:  %d\n", int(res.Score/flappy.PointsPerPipe))
	fmt.Fprintf(w, "  Score:         %d\n", int(res.Score))
	if res.GameOver {
		fmt.Fprintln(w, "  Result:        game over")
	} else {
		fmt.Fprintln(w, "  Result:        still flying when the replay stopped")
	}

	if run.Finished && (!res.GameOver || res.Ticks != run.Ticks) {
		logger.Warn("replay diverged from journal", "run", run.ID, "journal_ticks", run.Ticks, "replay_ticks", res.Ticks)
		fmt.Fprintf(w, "\nWarning: the journal recorded %d ticks; the replay diverged.\n", run.Ticks)
	}
	return nil
}

// runConfig returns the configuration a run was played with.
// Runs without a snapshot fall back to the usual config search.
func runConfig(run *storage.Run) (config.FlappyConfig, error) {
	if run.Config == "" {
		return config.LoadFlappy(flagConfig)
	}
	cfg, err := config.Parse([]byte(run.Config))
	if err != nil {
		return config.FlappyConfig{}, fmt.Errorf("run %s: %w", run.ID, err)
	}
	return cfg, nil
}
