package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eskdev24/buyvia-voice-api/internal/accent"
	"github.com/eskdev24/buyvia-voice-api/internal/config"
	"github.com/eskdev24/buyvia-voice-api/internal/curation"
	"github.com/eskdev24/buyvia-voice-api/internal/pipeline"
	"github.com/eskdev24/buyvia-voice-api/internal/store"
	"github.com/eskdev24/buyvia-voice-api/internal/types"
	"github.com/eskdev24/buyvia-voice-api/internal/validation"
)

// Suggester proposes standard spellings for an unknown word.
type Suggester interface {
	Suggest(ctx context.Context, word string) ([]curation.Suggestion, error)
}

// Handler implements the API handlers
type Handler struct {
	pipeline  *pipeline.Pipeline
	store     store.Store
	suggester Suggester
	apiKey    string
	version   string
	limits    config.LimitsConfig
}

// NewHandler creates a new Handler.
func NewHandler(p *pipeline.Pipeline, s store.Store, sug Suggester, apiKey, version string, limits config.LimitsConfig) *Handler {
	if limits.MaxTextLength <= 0 {
		limits.MaxTextLength = validation.DefaultMaxTextLength
	}
	if limits.MaxBulkMappings <= 0 {
		limits.MaxBulkMappings = validation.DefaultMaxBulkMappings
	}
	return &Handler{
		pipeline:  p,
		store:     s,
		suggester: sug,
		apiKey:    apiKey,
		version:   version,
		limits:    limits,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// decodeJSON decodes the body into v, answering 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return false
	}
	return true
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.GetStats(r.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		WriteProblem(w, r, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	stats := h.pipeline.Stats()
	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:          "healthy",
		Version:         h.version,
		StaticMappings:  stats.Static,
		LearnedMappings: stats.Learned,
		Commands:        h.pipeline.CommandCount(),
	})
}

// Commands handles GET /api/v1/commands
func (h *Handler) Commands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.CommandsResponse{
		Sections:       h.pipeline.Help(),
		TotalCommands:  h.pipeline.CommandCount(),
		AccentMappings: h.pipeline.Stats().Static,
	})
}

// Parse handles POST /api/v1/parse
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req types.TextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validation.ValidateTextRequest(req, h.limits.MaxTextLength); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	writeJSON(w, http.StatusOK, h.pipeline.Parse(req.Text))
}

// Normalize handles POST /api/v1/normalize
func (h *Handler) Normalize(w http.ResponseWriter, r *http.Request) {
	var req types.TextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validation.ValidateTextRequest(req, h.limits.MaxTextLength); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	writeJSON(w, http.StatusOK, types.NormalizeResponse{
		Original:   req.Text,
		Normalized: h.pipeline.Normalize(req.Text),
	})
}

// AccentMap handles GET /api/v1/accent-map
func (h *Handler) AccentMap(w http.ResponseWriter, r *http.Request) {
	m := h.pipeline.AccentMap()
	writeJSON(w, http.StatusOK, types.MappingsResponse{Mappings: m, Count: len(m)})
}

// ListUnknownWords handles GET /api/v1/admin/unknown-words
func (h *Handler) ListUnknownWords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")

	c := &validation.Collector{}
	if status != "" {
		c.Add(validation.ValidateEnum("status", status, []string{
			string(types.StatusPending), string(types.StatusSuggested), string(types.StatusPromoted),
		}))
	}
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > store.MaxListLimit {
			c.Add(&validation.ValidationError{
				Field:   "limit",
				Message: fmt.Sprintf("must be an integer between 1 and %d", store.MaxListLimit),
			})
		}
		limit = n
	}
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", c.Errors())
		return
	}

	entries, err := h.store.ListUnknownWords(r.Context(), types.UnknownWordStatus(status), limit)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	var pending []types.UnknownWordRecord
	for _, u := range h.pipeline.PendingUnknownWords() {
		pending = append(pending, types.FromUnknownWord(u))
	}

	writeJSON(w, http.StatusOK, types.UnknownWordsResponse{
		Entries: entries,
		Pending: pending,
		Count:   len(entries) + len(pending),
	})
}

// unknownWordID reads and validates the {id} path parameter.
func unknownWordID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := validation.ValidateULID("id", id); err != nil {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", []validation.ValidationError{*err})
		return "", false
	}
	return id, true
}

// SetSuggestion handles PUT /api/v1/admin/unknown-words/{id}/suggestion
func (h *Handler) SetSuggestion(w http.ResponseWriter, r *http.Request) {
	id, ok := unknownWordID(w, r)
	if !ok {
		return
	}
	var req types.SuggestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validation.ValidateSuggestionRequest(req); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	rec, err := h.store.SetSuggestion(r.Context(), id, accent.NormalizeStandard(req.SuggestedMapping))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	slog.Info("suggestion recorded",
		"component", "api",
		"action", "suggestion_set",
		"id", id,
		"word", rec.Word,
	)
	writeJSON(w, http.StatusOK, rec)
}

// Promote handles POST /api/v1/admin/unknown-words/{id}/promote
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	id, ok := unknownWordID(w, r)
	if !ok {
		return
	}

	rec, err := h.store.PromoteUnknownWord(r.Context(), id)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	// PromoteUnknownWord only succeeds for entries with a suggestion
	h.pipeline.Learn(rec.Word, *rec.SuggestedMapping)

	slog.Info("unknown word promoted",
		"component", "api",
		"action", "promoted",
		"id", id,
		"word", rec.Word,
		"standard", *rec.SuggestedMapping,
	)
	writeJSON(w, http.StatusOK, rec)
}

// Suggestions handles GET /api/v1/admin/suggestions?word=
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")

	c := &validation.Collector{}
	c.Add(validation.ValidateRequired("word", word))
	c.Add(validation.ValidateSingleToken("word", word))
	c.Add(validation.ValidateMaxLength("word", word, validation.MaxDialectLength))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", c.Errors())
		return
	}

	suggestions, err := h.suggester.Suggest(r.Context(), word)
	if err != nil {
		slog.Error("suggestion lookup failed", "word", word, "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, types.SuggestionsResponse{
		Word:        accent.Fold(word),
		Suggestions: suggestions,
	})
}

// ListMappings handles GET /api/v1/admin/mappings
func (h *Handler) ListMappings(w http.ResponseWriter, r *http.Request) {
	m := h.pipeline.LearnedMappings()
	writeJSON(w, http.StatusOK, types.MappingsResponse{Mappings: m, Count: len(m)})
}

// AddMapping handles POST /api/v1/admin/mappings
func (h *Handler) AddMapping(w http.ResponseWriter, r *http.Request) {
	var req types.MappingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validation.ValidateMappingRequest(req); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	dialect, standard := accent.Fold(req.Dialect), accent.NormalizeStandard(req.Standard)
	// Memory is updated only after the write succeeds.
	if err := h.store.SaveLearnedMapping(r.Context(), dialect, standard); err != nil {
		MapStoreError(w, r, err)
		return
	}
	h.pipeline.Learn(dialect, standard)

	slog.Info("mapping learned",
		"component", "api",
		"action", "mapping_learned",
		"dialect", dialect,
		"standard", standard,
	)
	writeJSON(w, http.StatusCreated, types.MappingRequest{Dialect: dialect, Standard: standard})
}

// BulkMappings handles POST /api/v1/admin/mappings/bulk
func (h *Handler) BulkMappings(w http.ResponseWriter, r *http.Request) {
	var req types.BulkMappingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validation.ValidateBulkMappingsRequest(req, h.limits.MaxBulkMappings); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	entries := make(map[string]string, len(req.Mappings))
	for k, v := range req.Mappings {
		entries[accent.Fold(k)] = accent.NormalizeStandard(v)
	}

	n, err := h.store.SaveLearnedMappings(r.Context(), entries)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	h.pipeline.BulkLoadLearned(entries)

	slog.Info("mappings bulk loaded",
		"component", "api",
		"action", "mappings_bulk_loaded",
		"count", n,
	)
	writeJSON(w, http.StatusOK, types.BulkMappingsResponse{Loaded: n})
}

// Stats handles GET /api/v1/admin/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	persisted, err := h.store.GetStats(r.Context())
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	stats := h.pipeline.Stats()
	writeJSON(w, http.StatusOK, types.AdminStatsResponse{
		StaticMappings:  stats.Static,
		LearnedMappings: stats.Learned,
		TotalMappings:   stats.Static + stats.Learned,
		PendingReview:   stats.Pending,
		Persisted:       *persisted,
	})
}
