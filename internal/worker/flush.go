package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/eskdev24/buyvia-voice-api/internal/accent"
	"github.com/eskdev24/buyvia-voice-api/internal/types"
)

const (
	// maxRetained bounds how many unflushed entries are carried between
	// failed flushes. The oldest entries are dropped first.
	maxRetained = 10000

	finalFlushTimeout = 5 * time.Second
)

// UnknownWordSource is drained on every flush.
type UnknownWordSource interface {
	DrainUnknownWords() []accent.UnknownWord
}

// UnknownWordSink persists drained entries.
type UnknownWordSink interface {
	AppendUnknownWords(ctx context.Context, entries []types.UnknownWordRecord) (int, error)
}

// UnknownWordFlushWorker moves the in-memory unknown-word log into the
// database. Entries from a failed flush are kept and retried on the next
// tick; a final flush runs when the worker stops.
type UnknownWordFlushWorker struct {
	source   UnknownWordSource
	sink     UnknownWordSink
	interval time.Duration

	mu       sync.Mutex
	retained []types.UnknownWordRecord
}

// NewUnknownWordFlushWorker creates a flush worker.
func NewUnknownWordFlushWorker(source UnknownWordSource, sink UnknownWordSink, interval time.Duration) *UnknownWordFlushWorker {
	return &UnknownWordFlushWorker{
		source:   source,
		sink:     sink,
		interval: interval,
	}
}

// Run starts the worker loop. Blocks until ctx is cancelled.
func (w *UnknownWordFlushWorker) Run(ctx context.Context) {
	slog.Info("worker started",
		"component", "worker",
		"worker", "unknown-word-flush",
		"interval", w.interval.String(),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// The parent context is gone; give the final flush its own deadline.
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalFlushTimeout)
			w.flushAndLog(flushCtx, "final")
			cancel()
			slog.Info("worker stopped",
				"component", "worker",
				"worker", "unknown-word-flush",
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			w.flushAndLog(ctx, "tick")
		}
	}
}

// Flush drains the log and persists it together with any entries retained
// from earlier failures. It returns the number of new rows stored.
func (w *UnknownWordFlushWorker) Flush(ctx context.Context) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	batch := w.retained
	for _, u := range w.source.DrainUnknownWords() {
		batch = append(batch, types.FromUnknownWord(u))
	}
	if len(batch) == 0 {
		return 0, nil
	}

	n, err := w.sink.AppendUnknownWords(ctx, batch)
	if err != nil {
		if over := len(batch) - maxRetained; over > 0 {
			slog.Warn("dropping oldest unflushed unknown words",
				"component", "worker",
				"worker", "unknown-word-flush",
				"action", "retain_overflow",
				"dropped", over,
			)
			batch = batch[over:]
		}
		w.retained = batch
		return 0, err
	}

	w.retained = nil
	return n, nil
}

// Retained returns how many entries are waiting for a retry.
func (w *UnknownWordFlushWorker) Retained() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.retained)
}

func (w *UnknownWordFlushWorker) flushAndLog(ctx context.Context, trigger string) {
	start := time.Now()
	n, err := w.Flush(ctx)
	if err != nil {
		slog.Error("unknown word flush failed",
			"component", "worker",
			"worker", "unknown-word-flush",
			"action", "flush_failed",
			"trigger", trigger,
			"retained", w.Retained(),
			"error", err,
		)
		return
	}
	if n > 0 {
		slog.Info("unknown words flushed",
			"component", "worker",
			"worker", "unknown-word-flush",
			"action", "flush_complete",
			"trigger", trigger,
			"stored", n,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
