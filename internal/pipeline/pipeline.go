// Package pipeline joins accent normalization and command classification
// behind a single facade used by the API, the CLI and the workers.
package pipeline

import (
	"github.com/eskdev24/buyvia-voice-api/internal/accent"
	"github.com/eskdev24/buyvia-voice-api/internal/command"
)

// Result is the full outcome of parsing one utterance.
type Result struct {
	RawText        string                `json:"raw_text"`
	NormalizedText string                `json:"normalized_text"`
	Command        command.ParsedCommand `json:"command"`
}

// Pipeline normalizes dialect text and classifies it into a command.
// It is safe for concurrent use.
type Pipeline struct {
	store      *accent.Store
	normalizer *accent.Normalizer
	catalog    *command.Catalog
	classifier *command.Classifier
}

// New returns a Pipeline over store and catalog.
func New(store *accent.Store, catalog *command.Catalog) *Pipeline {
	return &Pipeline{
		store:      store,
		normalizer: accent.NewNormalizer(store),
		catalog:    catalog,
		classifier: command.NewClassifier(catalog),
	}
}

// Normalize rewrites dialect spellings into standard English.
func (p *Pipeline) Normalize(text string) string {
	return p.normalizer.Normalize(text)
}

// Classify matches already normalized text against the catalog.
func (p *Pipeline) Classify(text string) command.ParsedCommand {
	return p.classifier.Classify(text)
}

// Process normalizes text and classifies the result.
func (p *Pipeline) Process(text string) command.ParsedCommand {
	return p.Classify(p.Normalize(text))
}

// Parse is Process that also returns the intermediate text.
func (p *Pipeline) Parse(text string) Result {
	normalized := p.Normalize(text)
	return Result{
		RawText:        text,
		NormalizedText: normalized,
		Command:        p.Classify(normalized),
	}
}

// Learn adds one approved mapping to the learned overlay.
func (p *Pipeline) Learn(dialect, standard string) {
	p.store.Learn(dialect, standard)
}

// BulkLoadLearned merges approved mappings into the learned overlay.
func (p *Pipeline) BulkLoadLearned(entries map[string]string) {
	p.store.BulkLoadLearned(entries)
}

// DrainUnknownWords takes every logged unknown word.
func (p *Pipeline) DrainUnknownWords() []accent.UnknownWord {
	return p.store.DrainUnknownWords()
}

// PendingUnknownWords returns logged unknown words without draining them.
func (p *Pipeline) PendingUnknownWords() []accent.UnknownWord {
	return p.store.PendingUnknownWords()
}

// Stats reports static, learned and pending counts.
func (p *Pipeline) Stats() accent.Stats {
	return p.store.Stats()
}

// Help returns example phrases grouped for clients.
func (p *Pipeline) Help() []command.HelpSection {
	return p.catalog.Help()
}

// AccentMap returns the static dictionary.
func (p *Pipeline) AccentMap() map[string]string {
	return p.store.Static()
}

// LearnedMappings returns the learned overlay.
func (p *Pipeline) LearnedMappings() map[string]string {
	return p.store.Learned()
}

// CommandCount is the number of categories in the catalog.
func (p *Pipeline) CommandCount() int {
	return p.catalog.Len()
}

// Store exposes the underlying mapping store for curation.
func (p *Pipeline) Store() *accent.Store {
	return p.store
}

// Catalog exposes the installed command catalog.
func (p *Pipeline) Catalog() *command.Catalog {
	return p.catalog
}
