package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eskdev24/buyvia-voice-api/internal/types"
)

// LearnedMappingLister reads persisted learned mappings.
type LearnedMappingLister interface {
	ListLearnedMappings(ctx context.Context) ([]types.LearnedMapping, error)
}

// LearnedOverlay is the in-memory side of the sync.
type LearnedOverlay interface {
	Learned() map[string]string
	BulkLoadLearned(entries map[string]string)
}

// LearnedSyncWorker copies learned mappings written by other replicas (or by
// the CLI) from the database into the in-memory overlay. Only entries that
// differ from the overlay are loaded.
type LearnedSyncWorker struct {
	source   LearnedMappingLister
	overlay  LearnedOverlay
	interval time.Duration
}

// NewLearnedSyncWorker creates a sync worker.
func NewLearnedSyncWorker(source LearnedMappingLister, overlay LearnedOverlay, interval time.Duration) *LearnedSyncWorker {
	return &LearnedSyncWorker{
		source:   source,
		overlay:  overlay,
		interval: interval,
	}
}

// Run starts the worker loop. Blocks until ctx is cancelled.
// Does NOT sync immediately; the caller performs the startup Sync before
// accepting traffic.
func (w *LearnedSyncWorker) Run(ctx context.Context) {
	slog.Info("worker started",
		"component", "worker",
		"worker", "learned-sync",
		"interval", w.interval.String(),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("worker stopped",
				"component", "worker",
				"worker", "learned-sync",
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			if _, err := w.Sync(ctx); err != nil && ctx.Err() == nil {
				slog.Error("learned mapping sync failed",
					"component", "worker",
					"worker", "learned-sync",
					"action", "sync_failed",
					"error", err,
				)
			}
		}
	}
}

// Sync loads persisted mappings that are missing from, or differ in, the
// overlay. It returns how many entries were loaded.
func (w *LearnedSyncWorker) Sync(ctx context.Context) (int, error) {
	persisted, err := w.source.ListLearnedMappings(ctx)
	if err != nil {
		return 0, fmt.Errorf("list learned mappings: %w", err)
	}

	current := w.overlay.Learned()
	changed := make(map[string]string)
	for _, m := range persisted {
		if v, ok := current[m.Dialect]; !ok || v != m.Standard {
			changed[m.Dialect] = m.Standard
		}
	}
	if len(changed) == 0 {
		return 0, nil
	}

	w.overlay.BulkLoadLearned(changed)
	slog.Info("learned mappings synced",
		"component", "worker",
		"worker", "learned-sync",
		"action", "sync_complete",
		"loaded", len(changed),
		"total", len(persisted),
	)
	return len(changed), nil
}
