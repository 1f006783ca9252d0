package command

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_BuildsCleanly(t *testing.T) {
	catalog, diags := Default()

	if len(diags) != 0 {
		for _, d := range diags {
			t.Errorf("diagnostic: %s", d)
		}
	}
	if got := catalog.Len(); got != 48 {
		t.Errorf("Len() = %d, want 48", got)
	}
}

func TestDefault_UniqueCategoryIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range Declarations() {
		if seen[d.ID] {
			t.Errorf("category %q declared twice", d.ID)
		}
		seen[d.ID] = true
		if len(d.Patterns) == 0 {
			t.Errorf("category %q has no entries", d.ID)
		}
	}
}

func TestBuild_SkipsMalformedEntries(t *testing.T) {
	// Given a declaration with one good and three bad entries
	decls := []Declaration{
		{ID: "good", Patterns: []Entry{Literal("hello")}},
		{ID: "mixed", Patterns: []Entry{
			Pattern(`buy {widget}`),
			Pattern(`(unclosed {query}`),
			Literal(""),
			Pattern(`buy {quantity} now`),
		}},
	}

	// When the catalog is built
	catalog, diags := Build(decls)

	// Then every bad entry is reported with its position
	if len(diags) != 3 {
		t.Fatalf("len(diags) = %d, want 3: %v", len(diags), diags)
	}
	wantIdx := []int{0, 1, 2}
	for i, d := range diags {
		if d.Category != "mixed" || d.Index != wantIdx[i] {
			t.Errorf("diags[%d] = %s, want mixed[%d]", i, d, wantIdx[i])
		}
		if d.Err == nil {
			t.Errorf("diags[%d].Err is nil", i)
		}
	}
	if !strings.Contains(diags[0].Err.Error(), "widget") {
		t.Errorf("diags[0].Err = %v, want mention of slot name", diags[0].Err)
	}

	// And the good entries are installed
	if catalog.Len() != 2 {
		t.Errorf("Len() = %d, want 2", catalog.Len())
	}
	got := NewClassifier(catalog).Classify("buy 4 now")
	want := ParsedCommand{Type: "mixed", Params: map[string]any{"quantity": 4}, Confidence: 0.9}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_CategoryWithoutEntriesNeverMatches(t *testing.T) {
	catalog, _ := Build([]Declaration{
		{ID: "broken", Patterns: []Entry{Pattern(`{nope}`)}},
		{ID: "fallback", Patterns: []Entry{Literal("anything")}},
	})

	if got := NewClassifier(catalog).Classify("anything").Type; got != "fallback" {
		t.Errorf("Classify().Type = %q, want fallback", got)
	}
}

func TestCatalog_DeclarationsAreInstalledEntries(t *testing.T) {
	catalog, _ := Build([]Declaration{
		{ID: "a", Extract: ExtractPrice, Patterns: []Entry{Pattern(`{bad}`), Literal("cheap")}},
	})

	got := catalog.Declarations()
	want := []Declaration{{ID: "a", Extract: ExtractPrice, Patterns: []Entry{Literal("cheap")}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declarations() mismatch (-want +got):\n%s", diff)
	}

	// Mutating the copy leaves the catalog intact.
	got[0].Patterns[0].Text = "changed"
	if catalog.Declarations()[0].Patterns[0].Text != "cheap" {
		t.Error("Declarations() returned shared storage")
	}
}

func TestCatalog_Help(t *testing.T) {
	catalog, _ := Default()

	got := catalog.Help()

	want := []HelpSection{
		{Name: "Navigation", Examples: []string{"go home", "open cart", "open profile", "show orders", "go back"}},
		{Name: "Search", Examples: []string{
			"search for sneakers",
			"show electronics category",
			"sort by price",
			"newest first",
		}},
		{Name: "Cart", Examples: []string{"add to cart", "remove from cart", "add one more", "clear cart"}},
		{Name: "Checkout", Examples: []string{"checkout", "pay with mobile money", "pay with card", "cash on delivery"}},
		{Name: "Wishlist", Examples: []string{"add to wishlist", "remove from wishlist", "move to cart"}},
		{Name: "Help", Examples: []string{"help", "repeat", "cancel"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Help() mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_HelpSkipsMissingCategories(t *testing.T) {
	catalog, _ := Build([]Declaration{{ID: "help", Patterns: []Entry{Literal("help me")}}})

	for _, s := range catalog.Help() {
		if s.Name == "Help" {
			if diff := cmp.Diff([]string{"help me"}, s.Examples); diff != "" {
				t.Errorf("Help examples mismatch (-want +got):\n%s", diff)
			}
			continue
		}
		if len(s.Examples) != 0 {
			t.Errorf("section %s examples = %v, want empty", s.Name, s.Examples)
		}
	}
}

func TestCatalog_HelpSkipsTemplates(t *testing.T) {
	catalog, _ := Build([]Declaration{
		{ID: "search_product", Patterns: []Entry{Pattern(`find {query}`), Literal("search")}},
		{ID: "filter_category", Patterns: []Entry{Pattern(`{category} section`)}},
	})

	for _, s := range catalog.Help() {
		if s.Name != "Search" {
			continue
		}
		if diff := cmp.Diff([]string{"search"}, s.Examples); diff != "" {
			t.Errorf("Search examples mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestExpandTemplate(t *testing.T) {
	got, err := expandTemplate(`budget {price}`)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if want := `budget (?P<price>\d+)`; got != want {
		t.Errorf("expandTemplate() = %q, want %q", got, want)
	}

	got, err = expandTemplate(`under {price} {currency}`)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if want := `under (?P<price>\d+) (?:ghana cedis|cedis|ghc)`; got != want {
		t.Errorf("expandTemplate() = %q, want %q", got, want)
	}

	if _, err := expandTemplate(`x {nope}`); err == nil {
		t.Error("expandTemplate() with unknown slot, want error")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"12", 12, true},
		{"fourteen", 14, true},
		{"thousand", 1000, true},
		{"dozen", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseNumber(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
