package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy/internal/assets"
	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/games/flappy"
	"github.com/vovakirdan/flappy/internal/platform/tui"
	"github.com/vovakirdan/flappy/internal/platform/window"
	"github.com/vovakirdan/flappy/internal/storage"
)

// Frontends
const (
	frontendWindow   = "window"
	frontendTerminal = "terminal"
)

var (
	flagFrontend string
	flagSeed     int64
)

func init() {
	rootCmd.Flags().StringVar(&flagFrontend, "frontend", frontendWindow, "Frontend: window or terminal")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if flagFrontend != frontendWindow && flagFrontend != frontendTerminal {
		return fmt.Errorf("unknown frontend %q (want %s or %s)", flagFrontend, frontendWindow, frontendTerminal)
	}

	logger, closeLog, err := newLogger(flagLogFile, flagDebug)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return err
	}

	sheet, err := assets.Load(flagSprites)
	if err != nil {
		return err
	}

	// Use time-based seed if not specified
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []flappy.Option{
		flappy.WithSeed(seed),
		flappy.WithLogger(logger),
	}

	if flagJournal != "" {
		store, err := storage.Open(flagJournal)
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := storage.NewRecorder(store, cfg, logger)
		if err != nil {
			return err
		}
		opts = append(opts, flappy.WithJournal(rec))
	}

	logger.Info("starting", "frontend", flagFrontend, "seed", seed, "journal", flagJournal != "")

	var runErr error
	switch flagFrontend {
	case frontendTerminal:
		width, height := terminalSize()
		canvas := tui.NewCanvas(tui.CanvasSize(width, height))
		game, err := flappy.New(cfg, sheet, canvas, opts...)
		if err != nil {
			return err
		}
		runErr = tui.Run(game, canvas)

	default:
		view := window.NewView()
		game, err := flappy.New(cfg, sheet, view, opts...)
		if err != nil {
			return err
		}
		runErr = window.Run(game, view)
	}

	if runErr != nil {
		logger.Error("frontend stopped", "error", runErr)
		return fmt.Errorf("running game: %w", runErr)
	}
	logger.Info("closed")
	return nil
}

// terminalSize returns the size of the controlling terminal, or 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
