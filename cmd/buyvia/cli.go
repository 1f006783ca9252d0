package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/eskdev24/buyvia-voice-api/internal/config"
	"github.com/eskdev24/buyvia-voice-api/internal/pipeline"
	"github.com/eskdev24/buyvia-voice-api/internal/store"
	"github.com/eskdev24/buyvia-voice-api/internal/worker"
)

var (
	dbPathOverride string
	jsonOutput     bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathOverride, "db", "",
		"Database path for offline commands (overrides config and BUYVIA_DB_PATH)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output in JSON format")
}

// openStore opens the database named by --db, or by configuration.
func openStore() (*store.SQLiteStore, error) {
	path := dbPathOverride
	if path == "" {
		dbCfg, err := config.LoadDatabaseConfig()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		path = dbCfg.Path
	}
	return store.NewSQLiteStore(path)
}

// loadLearned copies the persisted learned overlay into p.
func loadLearned(ctx context.Context, p *pipeline.Pipeline) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = worker.NewLearnedSyncWorker(db, p.Store(), 0).Sync(ctx)
	return err
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
