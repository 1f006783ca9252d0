package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/eskdev24/buyvia-voice-api/internal/accent"
	"github.com/eskdev24/buyvia-voice-api/internal/command"
	"github.com/eskdev24/buyvia-voice-api/internal/config"
	"github.com/eskdev24/buyvia-voice-api/internal/pipeline"
)

const testAPIKey = "test-secret-key-12345"

// captureLogs routes the default logger into a buffer for the duration of t.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// logEntries returns every JSON log line with the given message.
func logEntries(t *testing.T, buf *bytes.Buffer, msg string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v (%s)", err, line)
		}
		if entry["msg"] == msg {
			out = append(out, entry)
		}
	}
	return out
}

// newLimitedRouter builds the real router with a tight admin write budget.
func newLimitedRouter(t *testing.T, perSecond float64, burst int) http.Handler {
	t.Helper()
	catalog, diags := command.Default()
	if len(diags) > 0 {
		t.Fatalf("command.Default() diagnostics: %v", diags)
	}
	p := pipeline.New(accent.NewStore(), catalog)
	h := NewHandler(p, newMockStore(), &mockSuggester{}, testAPIKey, testVersion, config.LimitsConfig{
		MaxTextLength:   200,
		MaxBulkMappings: 10,
		AdminRate:       perSecond,
		AdminBurst:      burst,
	})
	return NewRouter(h)
}

func send(router http.Handler, method, path, body, authorization string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// --- Authentication ---

func TestRouter_PublicRoutesNeedNoToken(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/health", ""},
		{http.MethodGet, "/api/v1/commands", ""},
		{http.MethodPost, "/api/v1/parse", `{"text":"show my cart"}`},
		{http.MethodPost, "/api/v1/normalize", `{"text":"chale"}`},
		{http.MethodGet, "/api/v1/accent-map", ""},
	} {
		w := env.do(t, tc.method, tc.path, tc.body, false)
		if w.Code != http.StatusOK {
			t.Errorf("%s %s: status = %d, want 200", tc.method, tc.path, w.Code)
		}
	}
}

func TestRouter_AdminRejectsBadCredentials(t *testing.T) {
	// Given: the real router and a captured log
	env := newTestEnv(t)
	logs := captureLogs(t)

	cases := map[string]string{
		"missing header":     "",
		"wrong key":          "Bearer not-the-key",
		"basic scheme":       "Basic " + testAPIKey,
		"lowercase scheme":   "bearer " + testAPIKey,
		"empty token":        "Bearer ",
		"key without scheme": testAPIKey,
	}

	for name, authorization := range cases {
		t.Run(name, func(t *testing.T) {
			// When: an admin read arrives with the credential
			w := send(env.router, http.MethodGet, "/api/v1/admin/stats", "", authorization)

			// Then: 401 Problem Details that never echo the key
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}
			p := decodeBody[Problem](t, w)
			if p.Type != "https://buyvia.dev/errors/unauthorized" || p.Instance != "/api/v1/admin/stats" {
				t.Errorf("problem = %+v", p)
			}
			if strings.Contains(w.Body.String(), testAPIKey) {
				t.Error("response body contains the API key")
			}
		})
	}

	if strings.Contains(logs.String(), testAPIKey) {
		t.Error("logs contain the API key")
	}
	if got := len(logEntries(t, logs, "admin auth rejected")); got != len(cases) {
		t.Errorf("auth rejections logged = %d, want %d", got, len(cases))
	}
}

func TestRouter_AdminAcceptsPaddedToken(t *testing.T) {
	env := newTestEnv(t)

	w := send(env.router, http.MethodGet, "/api/v1/admin/stats", "", "Bearer  "+testAPIKey+" ")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRouter_EveryAdminRouteRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/admin/unknown-words"},
		{http.MethodGet, "/api/v1/admin/suggestions?word=mai"},
		{http.MethodGet, "/api/v1/admin/mappings"},
		{http.MethodGet, "/api/v1/admin/stats"},
		{http.MethodPut, "/api/v1/admin/unknown-words/01ARZ3NDEKTSV4RRFFQ69G5FAV/suggestion"},
		{http.MethodPost, "/api/v1/admin/unknown-words/01ARZ3NDEKTSV4RRFFQ69G5FAV/promote"},
		{http.MethodPost, "/api/v1/admin/mappings"},
		{http.MethodPost, "/api/v1/admin/mappings/bulk"},
	} {
		w := env.do(t, tc.method, tc.path, "", false)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", tc.method, tc.path, w.Code)
		}
	}
}

func TestExtractBearerToken(t *testing.T) {
	for header, want := range map[string]string{
		"":               "",
		"Bearer abc":     "abc",
		"Bearer  abc \t": "abc",
		"bearer abc":     "",
		"Token abc":      "",
		"Bearerabc":      "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		if got := extractBearerToken(req); got != want {
			t.Errorf("extractBearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

// --- Rate limiting ---

func TestRouter_AdminWritesRateLimited(t *testing.T) {
	// Given: a budget of one admin write
	router := newLimitedRouter(t, 0.001, 1)
	auth := "Bearer " + testAPIKey
	body := `{"dialect":"chale","standard":"friend"}`

	// When: two writes arrive back to back
	first := send(router, http.MethodPost, "/api/v1/admin/mappings", body, auth)
	second := send(router, http.MethodPost, "/api/v1/admin/mappings", body, auth)

	// Then: the second is rejected with a retry hint
	if first.Code != http.StatusCreated {
		t.Fatalf("first write status = %d, want 201", first.Code)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second write status = %d, want 429", second.Code)
	}
	retry, err := strconv.Atoi(second.Header().Get("Retry-After"))
	if err != nil || retry < 1 {
		t.Errorf("Retry-After = %q, want a positive number of seconds", second.Header().Get("Retry-After"))
	}
	if p := decodeBody[Problem](t, second); p.Type != "https://buyvia.dev/errors/rate-limit" {
		t.Errorf("problem type = %q", p.Type)
	}

	// And: admin reads and public routes are not limited
	if w := send(router, http.MethodGet, "/api/v1/admin/mappings", "", auth); w.Code != http.StatusOK {
		t.Errorf("admin read status = %d, want 200", w.Code)
	}
	if w := send(router, http.MethodPost, "/api/v1/parse", `{"text":"show my cart"}`, ""); w.Code != http.StatusOK {
		t.Errorf("parse status = %d, want 200", w.Code)
	}
}

func TestRouter_RejectedAuthDoesNotSpendWriteBudget(t *testing.T) {
	router := newLimitedRouter(t, 0.001, 1)
	body := `{"dialect":"chale","standard":"friend"}`

	for i := 0; i < 3; i++ {
		if w := send(router, http.MethodPost, "/api/v1/admin/mappings", body, "Bearer wrong"); w.Code != http.StatusUnauthorized {
			t.Fatalf("unauthenticated write %d: status = %d, want 401", i, w.Code)
		}
	}

	w := send(router, http.MethodPost, "/api/v1/admin/mappings", body, "Bearer "+testAPIKey)
	if w.Code != http.StatusCreated {
		t.Errorf("authenticated write status = %d, want 201", w.Code)
	}
}

func TestRateLimiter_Limits(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name      string
		perSecond float64
		burst     int
		allowed   int
	}{
		{"non-positive rate disables limiting", 0, 0, 5},
		{"burst below one is raised to one", 0.001, 0, 1},
		{"burst is honoured", 0.001, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRateLimiter(tt.perSecond, tt.burst).Middleware(ok)
			allowed := 0
			for i := 0; i < 5; i++ {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
				if w.Code == http.StatusOK {
					allowed++
				}
			}
			if allowed != tt.allowed {
				t.Errorf("allowed = %d, want %d", allowed, tt.allowed)
			}
		})
	}
}

// --- Request logging and recovery ---

func TestRouter_LogsEachRequest(t *testing.T) {
	// Given: the real router behind a client-supplied request ID and proxy IP
	env := newTestEnv(t)
	logs := captureLogs(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(`{"text":"show my cart"}`))
	req.Header.Set("X-Request-Id", "req-abc")
	req.Header.Set("X-Real-IP", "203.0.113.7")
	req.Header.Set("Authorization", "Bearer s3cret-client-token")

	// When
	env.router.ServeHTTP(httptest.NewRecorder(), req)

	// Then: one info line with the request's identity and outcome
	entries := logEntries(t, logs, "request completed")
	if len(entries) != 1 {
		t.Fatalf("request log lines = %d, want 1", len(entries))
	}
	e := entries[0]
	want := map[string]any{
		"level":       "INFO",
		"request_id":  "req-abc",
		"method":      "POST",
		"path":        "/api/v1/parse",
		"status":      float64(200),
		"remote_addr": "203.0.113.7",
	}
	for k, v := range want {
		if e[k] != v {
			t.Errorf("%s = %v, want %v", k, e[k], v)
		}
	}
	if _, ok := e["duration_ms"]; !ok {
		t.Error("duration_ms missing")
	}
	if strings.Contains(logs.String(), "s3cret-client-token") {
		t.Error("logs contain the Authorization header value")
	}
}

func TestRouter_GeneratesRequestID(t *testing.T) {
	env := newTestEnv(t)
	logs := captureLogs(t)

	env.do(t, http.MethodGet, "/api/v1/commands", "", false)

	entries := logEntries(t, logs, "request completed")
	if len(entries) != 1 {
		t.Fatalf("request log lines = %d, want 1", len(entries))
	}
	if id, _ := entries[0]["request_id"].(string); id == "" {
		t.Error("request_id is empty")
	}
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	// Given: a route that panics, mounted behind the global middleware
	env := newTestEnv(t)
	router := NewRouter(env.handler)
	router.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("catalog index corrupted at slot 7")
	})
	logs := captureLogs(t)

	// When
	w := send(router, http.MethodGet, "/boom", "", "")

	// Then: a generic 500 for the client, the detail only in the logs
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "slot 7") {
		t.Errorf("response leaks panic detail: %s", w.Body.String())
	}
	if p := decodeBody[Problem](t, w); p.Detail != "Internal Server Error" {
		t.Errorf("detail = %q", p.Detail)
	}

	recovered := logEntries(t, logs, "panic recovered")
	if len(recovered) != 1 || !strings.Contains(recovered[0]["error"].(string), "slot 7") {
		t.Errorf("panic log = %v", recovered)
	}
	completed := logEntries(t, logs, "request completed")
	if len(completed) != 1 || completed[0]["level"] != "ERROR" || completed[0]["status"] != float64(500) {
		t.Errorf("request log = %v", completed)
	}
}

func TestRouter_LogLevelFollowsStatus(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		level  string
	}{
		{"success", http.MethodGet, "/api/v1/health", "", "INFO"},
		{"client error", http.MethodPost, "/api/v1/parse", `{bad`, "WARN"},
		{"unauthorized", http.MethodGet, "/api/v1/admin/stats", "", "WARN"},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", "WARN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)

			env.do(t, tt.method, tt.path, tt.body, false)

			entries := logEntries(t, logs, "request completed")
			if len(entries) != 1 || entries[0]["level"] != tt.level {
				t.Errorf("request log = %v, want level %s", entries, tt.level)
			}
		})
	}

	if got := logLevelForStatus(http.StatusServiceUnavailable); got != slog.LevelError {
		t.Errorf("logLevelForStatus(503) = %v, want ERROR", got)
	}
}
