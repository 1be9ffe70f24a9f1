// flappy is a Flappy Bird clone that runs in a desktop window or a terminal.
//
// Usage:
//
//	flappy                   - Play (window frontend)
//	flappy --frontend terminal
//	flappy runs              - List journaled runs
//	flappy replay <run>      - Re-simulate a journaled run
//
// Global flags:
//
//	--config <path>    - Custom game config YAML
//	--sprites <path>   - Custom sprite sheet YAML
//	--journal <path>   - Run journal database
//	--log-file <path>  - Write logs to a file
//	--debug            - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// defaultJournalPath is read by runs and replay when --journal is not given.
const defaultJournalPath = "~/.flappy/journal.db"

var (
	// Global flags
	flagConfig  string
	flagSprites string
	flagJournal string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird for the desktop and the terminal",
	Long: `Flap through the gaps between scrolling pipes. Each pipe pair you clear
is worth one point; touching a pipe or dropping off the bottom ends the run.
Flap again after a game over to restart.

Controls:
  Space (window)           - Flap / restart
  Space/Up/W (terminal)    - Flap / restart
  Q                        - Quit

Available commands:
  runs     - List journaled runs
  replay   - Re-simulate a journaled run

Examples:
  flappy
  flappy --frontend terminal
  flappy --seed 42 --journal ~/.flappy/journal.db
  flappy runs
  flappy replay 0b5c7a7e`,
	Args:          cobra.NoArgs,
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSprites, "sprites", "", "Path to custom sprite sheet YAML")
	rootCmd.PersistentFlags().StringVar(&flagJournal, "journal", "",
		"Path to run journal database (play: empty = off; runs/replay: default "+defaultJournalPath+")")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
}

// journalPath returns the journal database for commands that read it.
func journalPath() string {
	if flagJournal != "" {
		return flagJournal
	}
	return defaultJournalPath
}
