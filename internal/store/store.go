package store

import (
	"context"

	"github.com/eskdev24/buyvia-voice-api/internal/types"
)

// Store defines the persistence contract for learned mappings and the
// unknown-word review queue.
type Store interface {
	SaveLearnedMapping(ctx context.Context, dialect, standard string) error
	SaveLearnedMappings(ctx context.Context, mappings map[string]string) (int, error)
	ListLearnedMappings(ctx context.Context) ([]types.LearnedMapping, error)
	AppendUnknownWords(ctx context.Context, entries []types.UnknownWordRecord) (int, error)
	ListUnknownWords(ctx context.Context, status types.UnknownWordStatus, limit int) ([]types.UnknownWordRecord, error)
	GetUnknownWord(ctx context.Context, id string) (*types.UnknownWordRecord, error)
	SetSuggestion(ctx context.Context, id, mapping string) (*types.UnknownWordRecord, error)
	PromoteUnknownWord(ctx context.Context, id string) (*types.UnknownWordRecord, error)
	GetStats(ctx context.Context) (*types.StoreStats, error)
	Close() error
}
