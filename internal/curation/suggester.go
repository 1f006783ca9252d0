// Package curation proposes standard spellings for unknown dialect words so
// curators can attach a suggestion before promoting it.
//
// Candidates come from four sources, in this order: the static dictionary
// entry for the word, values of static keys that share a prefix with it,
// phonetically similar vocabulary words (Double Metaphone overlap ranked by
// Jaro-Winkler), and optionally the nearest vocabulary words in embedding
// space.
package curation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/antzucaro/matchr"
	gocache "github.com/patrickmn/go-cache"

	"github.com/eskdev24/buyvia-voice-api/internal/accent"
	"github.com/eskdev24/buyvia-voice-api/internal/embedding"
)

// Suggestion sources.
const (
	SourceStatic    = "static"
	SourcePrefix    = "prefix"
	SourcePhonetic  = "phonetic"
	SourceEmbedding = "embedding"
)

const (
	defaultPhoneticThreshold  = 0.8
	defaultEmbeddingThreshold = 0.85
	defaultMaxSuggestions     = 5
	defaultCacheTTL           = 10 * time.Minute
)

// Suggestion is a candidate standard spelling.
type Suggestion struct {
	Word   string  `json:"word"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

// Vocabulary is the view of the mapping store the suggester ranks against.
// *accent.Store satisfies it.
type Vocabulary interface {
	Static() map[string]string
	Vocabulary() []string
	Version() uint64
}

// Options tunes the suggester. Zero values take defaults.
type Options struct {
	PhoneticThreshold  float64
	EmbeddingThreshold float64
	MaxSuggestions     int
	CacheTTL           time.Duration
}

func (o Options) withDefaults() Options {
	if o.PhoneticThreshold <= 0 {
		o.PhoneticThreshold = defaultPhoneticThreshold
	}
	if o.EmbeddingThreshold <= 0 {
		o.EmbeddingThreshold = defaultEmbeddingThreshold
	}
	if o.MaxSuggestions <= 0 {
		o.MaxSuggestions = defaultMaxSuggestions
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = defaultCacheTTL
	}
	return o
}

// Suggester produces ranked suggestions. It is safe for concurrent use.
type Suggester struct {
	vocab    Vocabulary
	embedder embedding.Embedder
	opts     Options
	cache    *gocache.Cache
	logger   *slog.Logger

	// vectors holds embeddings of vocabulary words computed so far.
	mu      sync.Mutex
	vectors map[string][]float32
}

// New creates a Suggester. embedder may be nil, which disables the
// embedding stage.
func New(vocab Vocabulary, embedder embedding.Embedder, opts Options, logger *slog.Logger) *Suggester {
	opts = opts.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	if embedder != nil {
		logger.Info("embedding ranking enabled",
			"component", "curation",
			"model", embedder.ModelName(),
			"threshold", opts.EmbeddingThreshold,
		)
	}
	return &Suggester{
		vocab:    vocab,
		embedder: embedder,
		opts:     opts,
		cache:    gocache.New(opts.CacheTTL, 2*opts.CacheTTL),
		logger:   logger,
		vectors:  make(map[string][]float32),
	}
}

// Suggest returns up to MaxSuggestions de-duplicated candidates for word.
// An empty word yields no suggestions. Embedding failures are logged and the
// lexical and phonetic candidates are returned on their own.
func (s *Suggester) Suggest(ctx context.Context, word string) ([]Suggestion, error) {
	key := accent.Fold(word)
	if key == "" {
		return []Suggestion{}, nil
	}

	cacheKey := fmt.Sprintf("%s@%d", key, s.vocab.Version())
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cloneSuggestions(cached.([]Suggestion)), nil
	}

	list := newCollector(s.opts.MaxSuggestions)
	static := s.vocab.Static()

	if v, ok := static[key]; ok {
		list.add(Suggestion{Word: v, Source: SourceStatic, Score: 1})
	}

	for _, k := range sortedKeys(static) {
		if list.full() {
			break
		}
		if k == key || !(strings.HasPrefix(k, key) || strings.HasPrefix(key, k)) {
			continue
		}
		list.add(Suggestion{Word: static[k], Source: SourcePrefix, Score: matchr.JaroWinkler(key, k, false)})
	}

	vocabulary := s.vocab.Vocabulary()
	if !list.full() {
		for _, sug := range s.phonetic(key, vocabulary) {
			list.add(sug)
		}
	}

	if s.embedder != nil && !list.full() {
		matches, err := s.nearest(ctx, key, vocabulary)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("embedding suggestions unavailable",
				"component", "curation",
				"word", key,
				"error", err,
			)
		}
		for _, m := range matches {
			list.add(Suggestion{Word: m.Text, Source: SourceEmbedding, Score: m.Similarity})
		}
	}

	s.cache.SetDefault(cacheKey, list.items)
	return cloneSuggestions(list.items), nil
}

// phonetic returns vocabulary words whose Double Metaphone codes overlap
// word's and whose Jaro-Winkler similarity meets the threshold, best first.
func (s *Suggester) phonetic(word string, vocabulary []string) []Suggestion {
	codes := metaphoneCodes(word)
	if len(codes) == 0 {
		return nil
	}

	var out []Suggestion
	for _, candidate := range vocabulary {
		if candidate == word || !overlaps(codes, metaphoneCodes(candidate)) {
			continue
		}
		score := matchr.JaroWinkler(word, candidate, false)
		if score >= s.opts.PhoneticThreshold {
			out = append(out, Suggestion{Word: candidate, Source: SourcePhonetic, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// nearest embeds any vocabulary words not seen before, then ranks them
// against word.
func (s *Suggester) nearest(ctx context.Context, word string, vocabulary []string) ([]embedding.Match, error) {
	s.mu.Lock()
	var missing []string
	for _, w := range vocabulary {
		if _, ok := s.vectors[w]; !ok {
			missing = append(missing, w)
		}
	}
	s.mu.Unlock()

	if len(missing) > 0 {
		vecs, err := s.embedder.EmbedBatch(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("embed vocabulary: %w", err)
		}
		if len(vecs) != len(missing) {
			return nil, fmt.Errorf("embed vocabulary: expected %d vectors, got %d", len(missing), len(vecs))
		}
		s.mu.Lock()
		for i, w := range missing {
			s.vectors[w] = vecs[i]
		}
		s.mu.Unlock()
	}

	query, err := s.embedder.Embed(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("embed word: %w", err)
	}

	texts := make([]string, 0, len(vocabulary))
	vectors := make([][]float32, 0, len(vocabulary))
	s.mu.Lock()
	for _, w := range vocabulary {
		if w == word {
			continue
		}
		texts = append(texts, w)
		vectors = append(vectors, s.vectors[w])
	}
	s.mu.Unlock()

	return embedding.Nearest(query, texts, vectors, s.opts.EmbeddingThreshold, s.opts.MaxSuggestions), nil
}

// collector accumulates suggestions, dropping repeated words.
type collector struct {
	limit int
	seen  map[string]struct{}
	items []Suggestion
}

func newCollector(limit int) *collector {
	return &collector{limit: limit, seen: make(map[string]struct{}), items: []Suggestion{}}
}

func (c *collector) full() bool {
	return len(c.items) >= c.limit
}

func (c *collector) add(s Suggestion) {
	if c.full() || s.Word == "" {
		return
	}
	if _, dup := c.seen[s.Word]; dup {
		return
	}
	c.seen[s.Word] = struct{}{}
	c.items = append(c.items, s)
}

func metaphoneCodes(word string) map[string]struct{} {
	codes := make(map[string]struct{}, 2)
	for _, tok := range strings.Fields(word) {
		p, s := matchr.DoubleMetaphone(tok)
		if p != "" {
			codes[p] = struct{}{}
		}
		if s != "" {
			codes[s] = struct{}{}
		}
	}
	return codes
}

func overlaps(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneSuggestions(in []Suggestion) []Suggestion {
	out := make([]Suggestion, len(in))
	copy(out, in)
	return out
}
