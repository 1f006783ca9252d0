package types

import (
	"encoding/json"
	"time"

	"github.com/eskdev24/buyvia-voice-api/internal/accent"
	"github.com/eskdev24/buyvia-voice-api/internal/command"
	"github.com/eskdev24/buyvia-voice-api/internal/curation"
)

// UnknownWordStatus tracks a persisted unknown word through curation.
type UnknownWordStatus string

const (
	StatusPending   UnknownWordStatus = "pending"
	StatusSuggested UnknownWordStatus = "suggested"
	StatusPromoted  UnknownWordStatus = "promoted"
)

// Valid reports whether s is a known status.
func (s UnknownWordStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSuggested, StatusPromoted:
		return true
	}
	return false
}

// LearnedMapping is an approved dialect spelling as persisted.
type LearnedMapping struct {
	Dialect   string    `json:"dialect"`
	Standard  string    `json:"standard"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnknownWordRecord is an unknown word as persisted for curation.
type UnknownWordRecord struct {
	ID               string            `json:"id"`
	Word             string            `json:"word"`
	Context          string            `json:"context"`
	LoggedAt         time.Time         `json:"timestamp"`
	SuggestedMapping *string           `json:"suggested_mapping"`
	Status           UnknownWordStatus `json:"status"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// FromUnknownWord converts an in-memory log entry to its persisted form.
// Entries that already carry a suggestion start out as suggested.
func FromUnknownWord(u accent.UnknownWord) UnknownWordRecord {
	status := StatusPending
	if u.SuggestedMapping != nil {
		status = StatusSuggested
	}
	return UnknownWordRecord{
		ID:               u.ID,
		Word:             u.Word,
		Context:          u.Context,
		LoggedAt:         u.Timestamp,
		SuggestedMapping: u.SuggestedMapping,
		Status:           status,
		UpdatedAt:        u.Timestamp,
	}
}

// StoreStats holds aggregate persistence counts.
type StoreStats struct {
	LearnedCount   int64 `json:"learned_count"`
	PendingCount   int64 `json:"pending_count"`
	SuggestedCount int64 `json:"suggested_count"`
	PromotedCount  int64 `json:"promoted_count"`
}

// --- Request and response bodies ---

// TextRequest carries an utterance for /parse and /normalize.
type TextRequest struct {
	Text string `json:"text"`
}

// NormalizeResponse is returned by /normalize.
type NormalizeResponse struct {
	Original   string `json:"original"`
	Normalized string `json:"normalized"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status          string `json:"status"`
	Version         string `json:"version"`
	StaticMappings  int    `json:"static_mappings"`
	LearnedMappings int    `json:"learned_mappings"`
	Commands        int    `json:"commands"`
}

// CommandsResponse lists example phrases for clients.
type CommandsResponse struct {
	Sections       []command.HelpSection `json:"sections"`
	TotalCommands  int                   `json:"total_commands"`
	AccentMappings int                   `json:"accent_mappings"`
}

// MappingsResponse carries a dialect to standard table.
type MappingsResponse struct {
	Mappings map[string]string `json:"mappings"`
	Count    int               `json:"count"`
}

// MappingRequest teaches one dialect spelling.
type MappingRequest struct {
	Dialect  string `json:"dialect"`
	Standard string `json:"standard"`
}

// BulkMappingsRequest teaches many dialect spellings at once.
type BulkMappingsRequest struct {
	Mappings map[string]string `json:"mappings"`
}

// BulkMappingsResponse reports how many mappings were stored.
type BulkMappingsResponse struct {
	Loaded int `json:"loaded"`
}

// SuggestionRequest attaches a proposed standard spelling to an unknown word.
type SuggestionRequest struct {
	SuggestedMapping string `json:"suggested_mapping"`
}

// UnknownWordsResponse lists persisted entries and those still in memory.
type UnknownWordsResponse struct {
	Entries []UnknownWordRecord `json:"entries"`
	Pending []UnknownWordRecord `json:"pending"`
	Count   int                 `json:"count"`
}

// SuggestionsResponse lists candidate standard spellings for a word.
type SuggestionsResponse struct {
	Word        string                `json:"word"`
	Suggestions []curation.Suggestion `json:"suggestions"`
}

// AdminStatsResponse combines in-memory and persisted counts.
type AdminStatsResponse struct {
	StaticMappings  int        `json:"static_mappings"`
	LearnedMappings int        `json:"learned_mappings"`
	TotalMappings   int        `json:"total_mappings"`
	PendingReview   int        `json:"pending_review"`
	Persisted       StoreStats `json:"persisted"`
}

// MarshalJSON ensures nil slices in UnknownWordsResponse marshal as [] not null.
func (r UnknownWordsResponse) MarshalJSON() ([]byte, error) {
	if r.Entries == nil {
		r.Entries = []UnknownWordRecord{}
	}
	if r.Pending == nil {
		r.Pending = []UnknownWordRecord{}
	}
	type Alias UnknownWordsResponse
	return json.Marshal(Alias(r))
}

// MarshalJSON ensures nil slices in SuggestionsResponse marshal as [] not null.
func (r SuggestionsResponse) MarshalJSON() ([]byte, error) {
	if r.Suggestions == nil {
		r.Suggestions = []curation.Suggestion{}
	}
	type Alias SuggestionsResponse
	return json.Marshal(Alias(r))
}

// MarshalJSON ensures a nil map in MappingsResponse marshals as {} not null.
func (r MappingsResponse) MarshalJSON() ([]byte, error) {
	if r.Mappings == nil {
		r.Mappings = map[string]string{}
	}
	type Alias MappingsResponse
	return json.Marshal(Alias(r))
}
