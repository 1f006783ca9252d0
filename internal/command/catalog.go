// Package command turns normalized utterances into app commands.
//
// Commands are declared in an ordered catalog. Each category lists literal
// phrases and parametrized patterns; classification walks the catalog in
// declaration order and returns the first category that matches. Order is
// part of the contract: several categories overlap and the earlier one wins.
package command

import (
	"fmt"
	"regexp"
)

// Kind tells a literal phrase from a parametrized pattern.
type Kind int

const (
	KindLiteral Kind = iota
	KindPattern
)

func (k Kind) String() string {
	if k == KindPattern {
		return "pattern"
	}
	return "literal"
}

// Entry is one declared phrase or pattern of a category.
type Entry struct {
	Kind Kind
	Text string
}

// Literal declares a phrase matched by containment in either direction.
func Literal(phrase string) Entry {
	return Entry{Kind: KindLiteral, Text: phrase}
}

// Pattern declares a template: a regular expression in which {slot}
// placeholders become typed, named captures.
func Pattern(template string) Entry {
	return Entry{Kind: KindPattern, Text: template}
}

// Extract selects the generic parameter heuristics run on literal matches.
// A quantity is always looked for.
type Extract uint8

const (
	ExtractQuery Extract = 1 << iota
	ExtractPrice
)

// Declaration is a category as written in the catalog source.
type Declaration struct {
	ID       string
	Patterns []Entry
	Extract  Extract
	// Example is shown in help. When empty the first literal phrase is
	// used.
	Example string
}

// Diagnostic reports a declared pattern that was not installed.
type Diagnostic struct {
	Category string
	Index    int
	Template string
	Err      error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%d] %q: %v", d.Category, d.Index, d.Template, d.Err)
}

// matcher is a compiled Entry.
type matcher struct {
	kind   Kind
	phrase string
	re     *regexp.Regexp
	slots  []boundSlot
}

type boundSlot struct {
	slot  slot
	index int
}

type category struct {
	id       string
	extract  Extract
	matchers []matcher
}

// Catalog is an immutable, validated command catalog.
type Catalog struct {
	categories []category
	decls      []Declaration
}

// Build compiles decls in order. Malformed patterns are reported and left
// out; Build never fails.
func Build(decls []Declaration) (*Catalog, []Diagnostic) {
	c := &Catalog{
		categories: make([]category, 0, len(decls)),
		decls:      make([]Declaration, 0, len(decls)),
	}
	var diags []Diagnostic

	for _, d := range decls {
		cat := category{id: d.ID, extract: d.Extract}
		installed := Declaration{ID: d.ID, Extract: d.Extract, Example: d.Example}

		for i, entry := range d.Patterns {
			m, err := compile(entry)
			if err != nil {
				diags = append(diags, Diagnostic{Category: d.ID, Index: i, Template: entry.Text, Err: err})
				continue
			}
			cat.matchers = append(cat.matchers, m)
			installed.Patterns = append(installed.Patterns, entry)
		}

		c.categories = append(c.categories, cat)
		c.decls = append(c.decls, installed)
	}

	return c, diags
}

// Default builds the built-in e-commerce catalog.
func Default() (*Catalog, []Diagnostic) {
	return Build(Declarations())
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// Declarations returns the installed declarations in catalog order.
func (c *Catalog) Declarations() []Declaration {
	out := make([]Declaration, len(c.decls))
	for i, d := range c.decls {
		out[i] = Declaration{
			ID:       d.ID,
			Extract:  d.Extract,
			Example:  d.Example,
			Patterns: append([]Entry(nil), d.Patterns...),
		}
	}
	return out
}

func compile(entry Entry) (matcher, error) {
	switch entry.Kind {
	case KindLiteral:
		if entry.Text == "" {
			return matcher{}, fmt.Errorf("empty literal phrase")
		}
		return matcher{kind: KindLiteral, phrase: entry.Text}, nil
	case KindPattern:
		expr, err := expandTemplate(entry.Text)
		if err != nil {
			return matcher{}, err
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return matcher{}, fmt.Errorf("compile pattern: %w", err)
		}
		m := matcher{kind: KindPattern, re: re}
		for i, name := range re.SubexpNames() {
			if s, ok := slots[name]; ok {
				m.slots = append(m.slots, boundSlot{slot: s, index: i})
			}
		}
		return m, nil
	default:
		return matcher{}, fmt.Errorf("unknown pattern kind %d", entry.Kind)
	}
}
