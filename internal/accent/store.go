// Package accent rewrites Ghanaian English transcriptions into standard
// English and owns the vocabulary behind the rewrite: a static dictionary, a
// learned overlay that grows at runtime, and a log of words nobody has mapped
// yet.
//
// All methods on Store and Normalizer are safe for concurrent use.
package accent

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// UnknownWord is a token the normalizer could not resolve, kept for curation.
type UnknownWord struct {
	ID               string    `json:"id"`
	Word             string    `json:"word"`
	Context          string    `json:"context"`
	Timestamp        time.Time `json:"timestamp"`
	SuggestedMapping *string   `json:"suggested_mapping"`
}

// Stats summarizes the store's vocabulary.
type Stats struct {
	Static  int `json:"static_mappings"`
	Learned int `json:"learned_mappings"`
	Pending int `json:"pending_review"`
}

// Option configures a Store.
type Option func(*Store)

// WithStatic replaces the built-in dictionary. Keys are folded on load.
func WithStatic(entries map[string]string) Option {
	return func(s *Store) {
		s.static = make(map[string]string, len(entries))
		for k, v := range entries {
			if key := Fold(k); key != "" {
				s.static[key] = v
			}
		}
	}
}

// WithClock sets the time source used to stamp unknown words.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store holds the static dictionary, the learned overlay and the
// unknown-word log.
//
// The static half is immutable after construction. The learned overlay is
// guarded by its own RWMutex so lookups never see a half-written entry, and
// the unknown-word log has a separate mutex so logging never contends with
// lookups.
type Store struct {
	static map[string]string
	common map[string]struct{}
	now    func() time.Time

	mu      sync.RWMutex
	learned map[string]string
	version atomic.Uint64

	logMu   sync.Mutex
	unknown []UnknownWord
}

// NewStore returns a Store seeded with the built-in Ghanaian English
// dictionary and an empty learned overlay.
func NewStore(opts ...Option) *Store {
	s := &Store{
		static:  staticDictionary,
		common:  commonWords,
		now:     func() time.Time { return time.Now().UTC() },
		learned: make(map[string]string),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Fold returns the lookup key for a token: Unicode case folded, NFC
// composed, surrounding whitespace removed.
func Fold(token string) string {
	return norm.NFC.String(cases.Fold().String(strings.TrimSpace(token)))
}

// Lookup resolves a dialect token, preferring the learned overlay over the
// static dictionary.
func (s *Store) Lookup(token string) (string, bool) {
	key := Fold(token)
	if key == "" {
		return "", false
	}

	s.mu.RLock()
	v, ok := s.learned[key]
	s.mu.RUnlock()
	if ok {
		return v, true
	}

	v, ok = s.static[key]
	return v, ok
}

// Learn records an approved mapping in the learned overlay, overwriting any
// previous learned value for the same key. Entries with an empty key or value
// are ignored.
func (s *Store) Learn(dialect, standard string) {
	key, value := Fold(dialect), NormalizeStandard(standard)
	if key == "" || value == "" {
		return
	}

	s.mu.Lock()
	s.learned[key] = value
	s.mu.Unlock()
	s.version.Add(1)
}

// BulkLoadLearned merges entries into the learned overlay. Existing learned
// keys are overwritten; the static dictionary is never touched.
func (s *Store) BulkLoadLearned(entries map[string]string) {
	if len(entries) == 0 {
		return
	}

	s.mu.Lock()
	for k, v := range entries {
		key, value := Fold(k), NormalizeStandard(v)
		if key == "" || value == "" {
			continue
		}
		s.learned[key] = value
	}
	s.mu.Unlock()
	s.version.Add(1)
}

// IsCommon reports whether word is ordinary English that should never be
// logged as unknown.
func (s *Store) IsCommon(word string) bool {
	_, ok := s.common[Fold(word)]
	return ok
}

// Version changes every time the learned overlay is written.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

// LogUnknown appends an unresolved word to the log and returns the entry.
// The word is stored under its lookup key so a promoted entry maps to the
// same key Learn uses.
func (s *Store) LogUnknown(word, context string) UnknownWord {
	entry := UnknownWord{
		ID:        ulid.Make().String(),
		Word:      Fold(word),
		Context:   context,
		Timestamp: s.now(),
	}

	s.logMu.Lock()
	s.unknown = append(s.unknown, entry)
	s.logMu.Unlock()

	return entry
}

// DrainUnknownWords removes and returns every logged entry, oldest first.
func (s *Store) DrainUnknownWords() []UnknownWord {
	s.logMu.Lock()
	drained := s.unknown
	s.unknown = nil
	s.logMu.Unlock()

	if drained == nil {
		return []UnknownWord{}
	}
	return drained
}

// PendingUnknownWords returns a copy of the log without draining it.
func (s *Store) PendingUnknownWords() []UnknownWord {
	s.logMu.Lock()
	defer s.logMu.Unlock()

	out := make([]UnknownWord, len(s.unknown))
	copy(out, s.unknown)
	return out
}

// Learned returns a copy of the learned overlay.
func (s *Store) Learned() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.learned))
	for k, v := range s.learned {
		out[k] = v
	}
	return out
}

// Static returns a copy of the static dictionary.
func (s *Store) Static() map[string]string {
	out := make(map[string]string, len(s.static))
	for k, v := range s.static {
		out[k] = v
	}
	return out
}

// Vocabulary returns the sorted set of standard words the store can produce
// plus the common-word allowlist.
func (s *Store) Vocabulary() []string {
	seen := make(map[string]struct{}, len(s.static)+len(s.common))
	for _, v := range s.static {
		seen[v] = struct{}{}
	}
	for w := range s.common {
		seen[w] = struct{}{}
	}
	s.mu.RLock()
	for _, v := range s.learned {
		seen[v] = struct{}{}
	}
	s.mu.RUnlock()

	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Stats returns current vocabulary counts.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	learned := len(s.learned)
	s.mu.RUnlock()

	s.logMu.Lock()
	pending := len(s.unknown)
	s.logMu.Unlock()

	return Stats{
		Static:  len(s.static),
		Learned: learned,
		Pending: pending,
	}
}

// NormalizeStandard returns the stored form of a standard spelling: lower
// case with surrounding whitespace removed.
func NormalizeStandard(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
