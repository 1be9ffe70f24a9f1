package storage

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/games/flappy"
)

// Recorder journals the runs of one game session into a Store.
// Write failures are logged and otherwise ignored so play never stops.
type Recorder struct {
	store  *Store
	config string
	logger *log.Logger
	run    string
}

// Ensure Recorder implements flappy.Journal
var _ flappy.Journal = (*Recorder)(nil)

// NewRecorder creates a recorder that snapshots cfg into every run it begins.
func NewRecorder(store *Store, cfg config.FlappyConfig, logger *log.Logger) (*Recorder, error) {
	data, err := config.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot snapshot config: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{store: store, config: string(data), logger: logger}, nil
}

// BeginRun implements flappy.Journal.
func (r *Recorder) BeginRun(seed int64, startY int) {
	id, err := r.store.BeginRun(seed, startY, r.config)
	if err != nil {
		r.run = ""
		r.logger.Warn("journal write failed", "op", "begin", "error", err)
		return
	}
	r.run = id
	r.logger.Debug("journal run started", "run", id)
}

// RecordJump implements flappy.Journal.
func (r *Recorder) RecordJump(tick int) {
	if r.run == "" {
		return
	}
	if err := r.store.RecordJump(r.run, tick); err != nil {
		r.logger.Warn("journal write failed", "op", "jump", "run", r.run, "error", err)
	}
}

// EndRun implements flappy.Journal.
func (r *Recorder) EndRun(ticks int) {
	if r.run == "" {
		return
	}
	if err := r.store.EndRun(r.run, ticks); err != nil {
		r.logger.Warn("journal write failed", "op", "end", "run", r.run, "error", err)
		return
	}
	r.logger.Debug("journal run finished", "run", r.run, "ticks", ticks)
}

// RunID returns the ID of the run being recorded, or "" if none.
func (r *Recorder) RunID() string {
	return r.run
}
