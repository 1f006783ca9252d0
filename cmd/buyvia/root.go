package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eskdev24/buyvia-voice-api/internal/accent"
	"github.com/eskdev24/buyvia-voice-api/internal/api"
	"github.com/eskdev24/buyvia-voice-api/internal/command"
	"github.com/eskdev24/buyvia-voice-api/internal/config"
	"github.com/eskdev24/buyvia-voice-api/internal/curation"
	"github.com/eskdev24/buyvia-voice-api/internal/embedding"
	"github.com/eskdev24/buyvia-voice-api/internal/export"
	"github.com/eskdev24/buyvia-voice-api/internal/pipeline"
	"github.com/eskdev24/buyvia-voice-api/internal/store"
	"github.com/eskdev24/buyvia-voice-api/internal/worker"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:          "buyvia",
	Short:        "Buyvia - voice command service for Ghanaian-accent English",
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(mappingsCmd)
	rootCmd.AddCommand(unknownCmd)
}

func run(cmd *cobra.Command, args []string) error {
	// 1. Signal handling
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// 2. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("configuration loaded")

	// 3. Initialize logger
	slog.SetDefault(newLogger(os.Stdout, cfg.Log))
	slog.Info("logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	// 4. Initialize store (migrations, WAL mode)
	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	slog.Info("store initialized", "path", cfg.Database.Path)

	// 5. Build the pipeline and load the learned overlay before taking traffic
	p, err := newPipeline()
	if err != nil {
		db.Close()
		return err
	}
	syncWorker := worker.NewLearnedSyncWorker(db, p.Store(), time.Duration(cfg.Worker.SyncInterval))
	n, err := syncWorker.Sync(ctx)
	if err != nil {
		db.Close()
		return fmt.Errorf("initial learned sync: %w", err)
	}
	slog.Info("pipeline initialized",
		"commands", p.CommandCount(),
		"static_mappings", p.Stats().Static,
		"learned_loaded", n,
	)

	// 6. Initialize suggestion ranking
	var embedder embedding.Embedder
	if cfg.Suggest.APIKey != "" {
		embedder = embedding.NewOpenAI(cfg.Suggest.APIKey, cfg.Suggest.EmbeddingModel, cfg.Suggest.EmbeddingDimensions)
	}
	suggester := curation.New(p.Store(), embedder, curation.Options{
		PhoneticThreshold:  cfg.Suggest.PhoneticThreshold,
		EmbeddingThreshold: cfg.Suggest.EmbeddingThreshold,
		MaxSuggestions:     cfg.Suggest.MaxSuggestions,
		CacheTTL:           time.Duration(cfg.Suggest.CacheTTL),
	}, slog.Default())

	// 7. Initialize curation export
	uploader, err := export.NewUploader(cfg.Export)
	if err != nil {
		db.Close()
		return err
	}
	if uploader.Enabled() {
		slog.Info("export initialized", "bucket", cfg.Export.Bucket, "prefix", cfg.Export.Prefix)
	}

	// 8. Initialize HTTP router
	handler := api.NewHandler(p, db, suggester, cfg.Auth.APIKey, Version, cfg.Limits)
	router := api.NewRouter(handler)
	slog.Info("router initialized")

	// 9. Configure HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	// 10. Start background workers
	var wg sync.WaitGroup
	flushWorker := worker.NewUnknownWordFlushWorker(p, db, time.Duration(cfg.Worker.FlushInterval))
	exportWorker := worker.NewExportWorker(db, uploader, cfg.Export.Prefix, time.Duration(cfg.Worker.ExportInterval))
	startWorker(ctx, &wg, "unknown-flush", flushWorker.Run)
	startWorker(ctx, &wg, "learned-sync", syncWorker.Run)
	startWorker(ctx, &wg, "curation-export", exportWorker.Run)

	// 11. Start HTTP server in goroutine
	go func() {
		slog.Info("server starting", "address", addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	// 12. Block until signal received
	<-ctx.Done()
	slog.Info("shutdown initiated")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	// 12a. Stop HTTP server (drains in-flight requests)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// 12b. Wait for workers; the flush worker persists what is left in memory
	wg.Wait()

	// 12c. Close store
	if err := db.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// newPipeline builds the pipeline over the default catalog. Declared
// patterns that fail to compile are logged and skipped.
func newPipeline() (*pipeline.Pipeline, error) {
	catalog, diags := command.Default()
	for _, d := range diags {
		slog.Warn("catalog pattern skipped",
			"component", "catalog",
			"category", d.Category,
			"index", d.Index,
			"template", d.Template,
			"error", d.Err,
		)
	}
	if catalog.Len() == 0 {
		return nil, fmt.Errorf("build catalog: no categories installed")
	}
	return pipeline.New(accent.NewStore(), catalog), nil
}

// newLogger returns a JSON logger, or a text logger when format is "text".
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// startWorker launches a background worker goroutine that respects context cancellation.
// Workers are tracked via WaitGroup for graceful shutdown.
func startWorker(ctx context.Context, wg *sync.WaitGroup, name string, fn func(ctx context.Context)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("worker started", "worker", name)
		fn(ctx)
		slog.Info("worker stopped", "worker", name)
	}()
}
