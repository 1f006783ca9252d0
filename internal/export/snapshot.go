package export

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eskdev24/buyvia-voice-api/internal/types"
)

// Object names written under each snapshot prefix.
const (
	LearnedObject = "learned.json"
	UnknownObject = "unknown.json"
)

// Snapshot is a point-in-time copy of curation state.
type Snapshot struct {
	TakenAt time.Time
	Learned []types.LearnedMapping
	Unknown []types.UnknownWordRecord
}

// Prefix returns the object prefix for a snapshot taken at t, e.g.
// "curation/20261018T120000Z".
func Prefix(base string, t time.Time) string {
	return path.Join(base, t.UTC().Format("20060102T150405Z"))
}

// Publish uploads both halves of snap concurrently under
// base/<timestamp>/ and returns the prefix used.
func Publish(ctx context.Context, u Uploader, base string, snap Snapshot) (string, error) {
	prefix := Prefix(base, snap.TakenAt)

	learned := snap.Learned
	if learned == nil {
		learned = []types.LearnedMapping{}
	}
	unknown := snap.Unknown
	if unknown == nil {
		unknown = []types.UnknownWordRecord{}
	}

	objects := map[string]any{
		LearnedObject: learned,
		UnknownObject: unknown,
	}

	g, gctx := errgroup.WithContext(ctx)
	for name, body := range objects {
		data, err := json.MarshalIndent(body, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", name, err)
		}
		key := path.Join(prefix, name)
		g.Go(func() error {
			return u.Upload(gctx, key, data)
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return prefix, nil
}
