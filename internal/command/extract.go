package command

import (
	"regexp"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d+`)

// leadIns are stripped from search text to leave the product query.
// Longer phrases come before their prefixes.
var leadIns = []string{
	"where can i find", "searching for", "looking for", "do you have",
	"look for", "show me", "find me", "where is", "get me", "i want",
	"i need", "search", "find",
}

// literalParams runs the generic heuristics for a literal match.
func literalParams(text string, extract Extract) map[string]any {
	params := make(map[string]any)

	if q, ok := extractQuantity(text); ok {
		params["quantity"] = q
	}
	if extract&ExtractQuery != 0 {
		if q := extractQuery(text); q != "" {
			params["query"] = q
		}
	}
	if extract&ExtractPrice != 0 {
		if p, ok := extractPrice(text); ok {
			params["price"] = p
		}
	}

	return params
}

// patternParams converts the named captures of a pattern match.
func patternParams(m matcher, groups []string) map[string]any {
	params := make(map[string]any, len(m.slots))
	for _, b := range m.slots {
		if b.index >= len(groups) {
			continue
		}
		if v, ok := b.slot.convert(groups[b.index]); ok {
			params[b.slot.name] = v
		}
	}
	return params
}

// extractQuantity looks for a number word, in table order, then for the
// first digit run. Zero is treated as absent.
func extractQuantity(text string) (int, bool) {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		words[w] = struct{}{}
	}
	for _, n := range numberWords {
		if _, ok := words[n.word]; ok {
			return n.value, true
		}
	}
	return firstNumber(text)
}

// extractPrice returns the first digit run. Zero is treated as absent.
func extractPrice(text string) (int, bool) {
	return firstNumber(text)
}

func firstNumber(text string) (int, bool) {
	m := digitRun.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// extractQuery removes search lead-ins and collapses the remaining words.
func extractQuery(text string) string {
	result := text
	for _, lead := range leadIns {
		result = strings.ReplaceAll(result, lead, "")
	}
	return strings.Join(strings.Fields(result), " ")
}
