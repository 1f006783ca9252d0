package accent

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minUnknownRunes is the shortest clean token worth logging as unknown.
const minUnknownRunes = 3

// Normalizer rewrites transcribed text token by token using a Store.
type Normalizer struct {
	store *Store
}

// NewNormalizer returns a Normalizer backed by store.
func NewNormalizer(store *Store) *Normalizer {
	return &Normalizer{store: store}
}

// Normalize lower-cases text, splits it on whitespace and replaces each
// token with its standard spelling. Tokens are looked up as-is first, then
// with surrounding punctuation stripped; trailing punctuation survives the
// rewrite. Unresolved tokens pass through unchanged and, unless they are
// short or common English, are logged as unknown with text as context.
//
// Normalize never fails, including on empty or purely symbolic input.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	tokens := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(tokens))
	var unknown []string

	for _, raw := range tokens {
		if v, ok := n.store.Lookup(raw); ok {
			out = append(out, v)
			continue
		}

		clean, suffix := splitToken(raw)
		if clean != "" {
			if v, ok := n.store.Lookup(clean); ok {
				out = append(out, v+suffix)
				continue
			}
		}

		out = append(out, raw)
		if utf8.RuneCountInString(clean) >= minUnknownRunes && !n.store.IsCommon(clean) {
			unknown = append(unknown, clean)
		}
	}

	for _, word := range unknown {
		n.store.LogUnknown(word, text)
	}

	return strings.Join(out, " ")
}

// splitToken strips leading and trailing non-alphanumeric runes from tok.
// The stripped trailing run is returned separately so it can be re-attached.
func splitToken(tok string) (clean, suffix string) {
	trimmed := strings.TrimRightFunc(tok, notAlphanumeric)
	suffix = tok[len(trimmed):]
	clean = strings.TrimLeftFunc(trimmed, notAlphanumeric)
	return clean, suffix
}

func notAlphanumeric(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
