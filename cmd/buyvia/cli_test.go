package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// executeCmd runs the root command with captured output against dbPath.
func executeCmd(t *testing.T, dbPath, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	// Cobra parses into package-level variables; reset them so values from
	// earlier tests do not leak.
	dbPathOverride = ""
	jsonOutput = false
	withLearned = false
	unknownStatus = ""
	unknownLimit = 100

	fullArgs := append([]string{}, args...)
	if dbPath != "" {
		fullArgs = append(fullArgs, "--db", dbPath)
	}

	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)

	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(fullArgs)
	rootCmd.SetIn(strings.NewReader(stdin))

	err = rootCmd.Execute()

	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)

	return outBuf.String(), errBuf.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "buyvia.db")
}

func TestNormalizeCmd(t *testing.T) {
	captureLogs(t)

	stdout, _, err := executeCmd(t, "", "", "normalize", "ad", "dis", "tu", "mai", "cut")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "add this two mai cart" {
		t.Errorf("normalize = %q, want %q", got, "add this two mai cart")
	}
}

func TestParseCmd_JSON(t *testing.T) {
	captureLogs(t)

	stdout, _, err := executeCmd(t, "", "", "parse", "ad dis tu mai cut", "--json")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var res struct {
		NormalizedText string `json:"normalized_text"`
		Command        struct {
			Type       string         `json:"type"`
			Params     map[string]any `json:"params"`
			Confidence float64        `json:"confidence"`
		} `json:"command"`
	}
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if res.Command.Type != "add_to_cart" || res.Command.Confidence != 0.9 {
		t.Errorf("command = %+v", res.Command)
	}
	if res.Command.Params["quantity"] != float64(2) {
		t.Errorf("quantity = %v, want 2", res.Command.Params["quantity"])
	}
}

func TestParseCmd_Table(t *testing.T) {
	captureLogs(t)

	stdout, _, err := executeCmd(t, "", "", "parse", "search for sneakas")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !strings.Contains(stdout, "search_product") || !strings.Contains(stdout, "sneakers") {
		t.Errorf("output = %q", stdout)
	}
}

func TestCatalogCmd_JSON(t *testing.T) {
	captureLogs(t)

	stdout, _, err := executeCmd(t, "", "", "catalog", "--json")
	if err != nil {
		t.Fatalf("catalog failed: %v", err)
	}

	var out struct {
		Categories []struct {
			ID       string   `json:"id"`
			Patterns []string `json:"patterns"`
		} `json:"categories"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if out.Total != 48 || len(out.Categories) != 48 {
		t.Errorf("total = %d, categories = %d, want 48", out.Total, len(out.Categories))
	}
	if out.Categories[0].ID != "go_home" {
		t.Errorf("first category = %q, want go_home", out.Categories[0].ID)
	}
}

func TestMappings_AddListExport(t *testing.T) {
	captureLogs(t)
	db := tempDB(t)

	// Given: a mapping added from the command line
	stdout, _, err := executeCmd(t, db, "", "mappings", "add", "Chale", " Friend ")
	if err != nil {
		t.Fatalf("mappings add failed: %v", err)
	}
	if !strings.Contains(stdout, `"chale" -> "friend"`) {
		t.Errorf("add output = %q", stdout)
	}

	// Then: it is listed
	stdout, _, err = executeCmd(t, db, "", "mappings", "list")
	if err != nil {
		t.Fatalf("mappings list failed: %v", err)
	}
	if !strings.Contains(stdout, "chale") || !strings.Contains(stdout, "friend") {
		t.Errorf("list output = %q", stdout)
	}

	// And: exported as YAML
	stdout, _, err = executeCmd(t, db, "", "mappings", "export")
	if err != nil {
		t.Fatalf("mappings export failed: %v", err)
	}
	var exported map[string]string
	if err := yaml.Unmarshal([]byte(stdout), &exported); err != nil {
		t.Fatalf("export is not YAML: %v", err)
	}
	if exported["chale"] != "friend" {
		t.Errorf("exported = %v", exported)
	}
}

func TestMappings_AddRejectsMultiWordDialect(t *testing.T) {
	captureLogs(t)

	_, _, err := executeCmd(t, tempDB(t), "", "mappings", "add", "chale boy", "friend")
	if err == nil || !strings.Contains(err.Error(), "single word") {
		t.Errorf("err = %v, want single word error", err)
	}
}

func TestMappings_ImportFromStdinAndFile(t *testing.T) {
	captureLogs(t)
	db := tempDB(t)

	stdout, _, err := executeCmd(t, db, "chale: friend\nWetin: What\n", "mappings", "import")
	if err != nil {
		t.Fatalf("import from stdin failed: %v", err)
	}
	if !strings.Contains(stdout, "Imported 2 mappings") {
		t.Errorf("output = %q", stdout)
	}

	file := filepath.Join(t.TempDir(), "more.yaml")
	if err := os.WriteFile(file, []byte("kpa: shoes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := executeCmd(t, db, "", "mappings", "import", file); err != nil {
		t.Fatalf("import from file failed: %v", err)
	}

	stdout, _, err = executeCmd(t, db, "", "mappings", "list", "--json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var out struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if out.Total != 3 {
		t.Errorf("total = %d, want 3", out.Total)
	}
}

func TestMappings_ImportRejectsMalformedYAML(t *testing.T) {
	captureLogs(t)

	_, _, err := executeCmd(t, tempDB(t), "- not\n- a map\n", "mappings", "import")
	if err == nil {
		t.Error("expected error for a YAML list")
	}
}

func TestNormalizeCmd_WithLearned(t *testing.T) {
	captureLogs(t)
	db := tempDB(t)

	if _, _, err := executeCmd(t, db, "", "mappings", "add", "chale", "friend"); err != nil {
		t.Fatalf("mappings add failed: %v", err)
	}

	stdout, _, err := executeCmd(t, db, "", "normalize", "chale", "--learned")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "friend" {
		t.Errorf("normalize --learned = %q, want friend", got)
	}

	stdout, _, _ = executeCmd(t, db, "", "normalize", "chale")
	if got := strings.TrimSpace(stdout); got != "chale" {
		t.Errorf("normalize without --learned = %q, want chale", got)
	}
}

func TestUnknownList(t *testing.T) {
	captureLogs(t)
	db := tempDB(t)

	stdout, _, err := executeCmd(t, db, "", "unknown", "list")
	if err != nil {
		t.Fatalf("unknown list failed: %v", err)
	}
	if !strings.Contains(stdout, "No unknown words.") {
		t.Errorf("output = %q", stdout)
	}

	_, _, err = executeCmd(t, db, "", "unknown", "list", "--status", "rejected")
	if err == nil || !strings.Contains(err.Error(), "invalid status") {
		t.Errorf("err = %v, want invalid status", err)
	}
}
