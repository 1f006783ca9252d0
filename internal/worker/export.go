package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eskdev24/buyvia-voice-api/internal/export"
	"github.com/eskdev24/buyvia-voice-api/internal/store"
	"github.com/eskdev24/buyvia-voice-api/internal/types"
)

// CurationSource provides the data written to each export.
type CurationSource interface {
	ListLearnedMappings(ctx context.Context) ([]types.LearnedMapping, error)
	ListUnknownWords(ctx context.Context, status types.UnknownWordStatus, limit int) ([]types.UnknownWordRecord, error)
}

// ExportWorker periodically publishes learned mappings and the unreviewed
// unknown-word backlog to object storage.
type ExportWorker struct {
	source   CurationSource
	uploader export.Uploader
	prefix   string
	interval time.Duration
	now      func() time.Time
}

// NewExportWorker creates an export worker writing under prefix.
func NewExportWorker(source CurationSource, uploader export.Uploader, prefix string, interval time.Duration) *ExportWorker {
	return &ExportWorker{
		source:   source,
		uploader: uploader,
		prefix:   prefix,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run starts the worker loop. Blocks until ctx is cancelled. Returns
// immediately when the uploader is not backed by real storage.
func (w *ExportWorker) Run(ctx context.Context) {
	if !w.uploader.Enabled() {
		slog.Info("worker disabled",
			"component", "worker",
			"worker", "curation-export",
			"reason", "no_bucket_configured",
		)
		return
	}

	slog.Info("worker started",
		"component", "worker",
		"worker", "curation-export",
		"interval", w.interval.String(),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("worker stopped",
				"component", "worker",
				"worker", "curation-export",
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			w.exportAndLog(ctx)
		}
	}
}

// Export writes one snapshot and returns its object prefix.
func (w *ExportWorker) Export(ctx context.Context) (string, error) {
	learned, err := w.source.ListLearnedMappings(ctx)
	if err != nil {
		return "", fmt.Errorf("list learned mappings: %w", err)
	}

	var backlog []types.UnknownWordRecord
	for _, status := range []types.UnknownWordStatus{types.StatusPending, types.StatusSuggested} {
		recs, err := w.source.ListUnknownWords(ctx, status, store.MaxListLimit)
		if err != nil {
			return "", fmt.Errorf("list %s unknown words: %w", status, err)
		}
		backlog = append(backlog, recs...)
	}

	return export.Publish(ctx, w.uploader, w.prefix, export.Snapshot{
		TakenAt: w.now(),
		Learned: learned,
		Unknown: backlog,
	})
}

func (w *ExportWorker) exportAndLog(ctx context.Context) {
	start := time.Now()
	prefix, err := w.Export(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Warn("curation export failed",
			"component", "worker",
			"worker", "curation-export",
			"action", "export_failed",
			"error", err,
		)
		return
	}
	slog.Info("curation exported",
		"component", "worker",
		"worker", "curation-export",
		"action", "export_complete",
		"prefix", prefix,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
