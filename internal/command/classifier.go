package command

import "strings"

// TypeUnknown is the command type returned when nothing in the catalog
// matches.
const TypeUnknown = "unknown"

// patternConfidence is the fixed score of a parametrized pattern match.
const patternConfidence = 0.9

// ParsedCommand is the result of classifying one utterance.
type ParsedCommand struct {
	Type       string         `json:"type"`
	Params     map[string]any `json:"params"`
	Confidence float64        `json:"confidence"`
}

// Classifier matches normalized text against a Catalog.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	catalog *Catalog
}

// NewClassifier returns a Classifier over catalog.
func NewClassifier(catalog *Catalog) *Classifier {
	return &Classifier{catalog: catalog}
}

// Classify returns the first category, in catalog order, with a pattern or
// phrase that matches text. Patterns may match anywhere in the text. A
// literal phrase matches when either string contains the other. The
// confidence only describes how well the winning entry matched; it never
// changes which category wins.
func (c *Classifier) Classify(text string) ParsedCommand {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return ParsedCommand{Type: TypeUnknown, Params: map[string]any{}, Confidence: 0}
	}

	for _, cat := range c.catalog.categories {
		for _, m := range cat.matchers {
			switch m.kind {
			case KindPattern:
				groups := m.re.FindStringSubmatch(text)
				if groups == nil {
					continue
				}
				return ParsedCommand{
					Type:       cat.id,
					Params:     patternParams(m, groups),
					Confidence: patternConfidence,
				}
			case KindLiteral:
				if !strings.Contains(text, m.phrase) && !strings.Contains(m.phrase, text) {
					continue
				}
				return ParsedCommand{
					Type:       cat.id,
					Params:     literalParams(text, cat.extract),
					Confidence: Confidence(text, m.phrase),
				}
			}
		}
	}

	return ParsedCommand{
		Type:       TypeUnknown,
		Params:     map[string]any{"raw_text": text},
		Confidence: 0,
	}
}

// Confidence scores a literal match of phrase against text: 1.0 for equal
// strings, 0.9 when text contains phrase, 0.8 when phrase contains text,
// otherwise the Jaccard overlap of their word sets.
func Confidence(text, phrase string) float64 {
	switch {
	case text == phrase:
		return 1.0
	case strings.Contains(text, phrase):
		return 0.9
	case strings.Contains(phrase, text):
		return 0.8
	}

	a := wordSet(text)
	b := wordSet(phrase)
	var inter int
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}
