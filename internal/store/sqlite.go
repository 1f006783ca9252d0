package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/eskdev24/buyvia-voice-api/internal/accent"
	"github.com/eskdev24/buyvia-voice-api/internal/types"
	_ "modernc.org/sqlite"
)

// timeFormat is fixed width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore persists learned mappings and unknown words in SQLite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore creates a new SQLiteStore instance.
// It initializes the database with WAL mode, applies pragmas, and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

// enablePragmas sets SQLite pragmas for optimal performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const upsertLearnedSQL = `
	INSERT INTO learned_mappings (dialect, standard, created_at, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(dialect) DO UPDATE SET standard = excluded.standard, updated_at = excluded.updated_at`

// SaveLearnedMapping inserts or overwrites one learned mapping.
func (s *SQLiteStore) SaveLearnedMapping(ctx context.Context, dialect, standard string) error {
	now := s.now().Format(timeFormat)
	if _, err := s.db.ExecContext(ctx, upsertLearnedSQL, dialect, standard, now, now); err != nil {
		return fmt.Errorf("save learned mapping: %w", err)
	}
	return nil
}

// SaveLearnedMappings upserts every mapping in one transaction and returns
// how many were written.
func (s *SQLiteStore) SaveLearnedMappings(ctx context.Context, mappings map[string]string) (int, error) {
	if len(mappings) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertLearnedSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	now := s.now().Format(timeFormat)
	for dialect, standard := range mappings {
		if _, err := stmt.ExecContext(ctx, dialect, standard, now, now); err != nil {
			return 0, fmt.Errorf("save learned mapping %q: %w", dialect, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return len(mappings), nil
}

// ListLearnedMappings returns every learned mapping ordered by dialect.
func (s *SQLiteStore) ListLearnedMappings(ctx context.Context) ([]types.LearnedMapping, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT dialect, standard, created_at, updated_at
		FROM learned_mappings
		ORDER BY dialect ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query learned mappings: %w", err)
	}
	defer rows.Close()

	var out []types.LearnedMapping
	for rows.Next() {
		var m types.LearnedMapping
		var createdAt, updatedAt string
		if err := rows.Scan(&m.Dialect, &m.Standard, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		m.UpdatedAt = parseTime(updatedAt)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return out, nil
}

// AppendUnknownWords stores drained unknown words as pending. Entries whose
// ID is already stored are skipped, so a retried batch is never duplicated.
// It returns the number of rows inserted.
func (s *SQLiteStore) AppendUnknownWords(ctx context.Context, entries []types.UnknownWordRecord) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO unknown_words (id, word, context, logged_at, suggested_mapping, status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	now := s.now().Format(timeFormat)
	var inserted int
	for _, e := range entries {
		status := types.StatusPending
		if e.SuggestedMapping != nil {
			status = types.StatusSuggested
		}
		res, err := stmt.ExecContext(ctx,
			e.ID,
			e.Word,
			e.Context,
			e.LoggedAt.UTC().Format(timeFormat),
			nullableString(e.SuggestedMapping),
			string(status),
			now,
		)
		if err != nil {
			return 0, fmt.Errorf("insert unknown word %s: %w", e.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("get rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return inserted, nil
}

const selectUnknownSQL = `
	SELECT id, word, context, logged_at, suggested_mapping, status, updated_at
	FROM unknown_words`

// ListUnknownWords returns stored unknown words, oldest first. An empty status
// lists every status. A non-positive limit uses DefaultListLimit; limits are
// capped at MaxListLimit.
func (s *SQLiteStore) ListUnknownWords(ctx context.Context, status types.UnknownWordStatus, limit int) ([]types.UnknownWordRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = s.db.QueryContext(ctx, selectUnknownSQL+`
			ORDER BY logged_at ASC, id ASC
			LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, selectUnknownSQL+`
			WHERE status = ?
			ORDER BY logged_at ASC, id ASC
			LIMIT ?`, string(status), limit)
	}
	if err != nil {
		return nil, fmt.Errorf("query unknown words: %w", err)
	}
	defer rows.Close()

	var out []types.UnknownWordRecord
	for rows.Next() {
		rec, err := scanUnknownWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return out, nil
}

// GetUnknownWord retrieves an unknown word by ID.
func (s *SQLiteStore) GetUnknownWord(ctx context.Context, id string) (*types.UnknownWordRecord, error) {
	return getUnknownWord(ctx, s.db, id)
}

// SetSuggestion attaches a proposed standard spelling and moves the entry to
// the suggested status. Promoted entries cannot be changed.
func (s *SQLiteStore) SetSuggestion(ctx context.Context, id, mapping string) (*types.UnknownWordRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	rec, err := getUnknownWord(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status == types.StatusPromoted {
		return nil, ErrPromoted
	}

	now := s.now()
	if _, err := tx.ExecContext(ctx, `
		UPDATE unknown_words
		SET suggested_mapping = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, mapping, string(types.StatusSuggested), now.Format(timeFormat), id); err != nil {
		return nil, fmt.Errorf("update suggestion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	rec.SuggestedMapping = &mapping
	rec.Status = types.StatusSuggested
	rec.UpdatedAt = parseTime(now.Format(timeFormat))
	return rec, nil
}

// PromoteUnknownWord saves the entry's suggestion as a learned mapping and
// marks the entry promoted, atomically.
func (s *SQLiteStore) PromoteUnknownWord(ctx context.Context, id string) (*types.UnknownWordRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	rec, err := getUnknownWord(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status == types.StatusPromoted {
		return nil, ErrPromoted
	}
	if rec.SuggestedMapping == nil || *rec.SuggestedMapping == "" {
		return nil, ErrNoSuggestion
	}

	// Keyed like the in-memory overlay so learned sync sees no difference.
	dialect := accent.Fold(rec.Word)
	now := s.now().Format(timeFormat)
	if _, err := tx.ExecContext(ctx, upsertLearnedSQL, dialect, *rec.SuggestedMapping, now, now); err != nil {
		return nil, fmt.Errorf("save learned mapping: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE unknown_words SET status = ?, updated_at = ? WHERE id = ?
	`, string(types.StatusPromoted), now, id); err != nil {
		return nil, fmt.Errorf("mark promoted: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	rec.Status = types.StatusPromoted
	rec.UpdatedAt = parseTime(now)
	return rec, nil
}

// GetStats returns aggregate counts.
func (s *SQLiteStore) GetStats(ctx context.Context) (*types.StoreStats, error) {
	var stats types.StoreStats
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM learned_mappings").Scan(&stats.LearnedCount); err != nil {
		return nil, fmt.Errorf("count learned mappings: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM unknown_words GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count unknown words: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		switch types.UnknownWordStatus(status) {
		case types.StatusPending:
			stats.PendingCount = count
		case types.StatusSuggested:
			stats.SuggestedCount = count
		case types.StatusPromoted:
			stats.PromotedCount = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return &stats, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getUnknownWord(ctx context.Context, q queryRower, id string) (*types.UnknownWordRecord, error) {
	row := q.QueryRowContext(ctx, selectUnknownSQL+` WHERE id = ?`, id)

	rec, err := scanUnknownWord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan row: %w", err)
	}
	return rec, nil
}

// scanUnknownWord scans a row into an UnknownWordRecord.
func scanUnknownWord(scanner interface{ Scan(...any) error }) (*types.UnknownWordRecord, error) {
	var rec types.UnknownWordRecord
	var loggedAt, updatedAt, status string
	var suggestion sql.NullString

	if err := scanner.Scan(&rec.ID, &rec.Word, &rec.Context, &loggedAt, &suggestion, &status, &updatedAt); err != nil {
		return nil, err
	}

	rec.LoggedAt = parseTime(loggedAt)
	rec.UpdatedAt = parseTime(updatedAt)
	rec.Status = types.UnknownWordStatus(status)
	if suggestion.Valid {
		v := suggestion.String
		rec.SuggestedMapping = &v
	}
	return &rec, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
