package command

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type slotKind int

const (
	slotText slotKind = iota
	slotInt
	slotToken
	// slotMatch is matched but never returned as a parameter.
	slotMatch
)

// slot is a typed capture a template may reference as {name}.
type slot struct {
	name     string
	kind     slotKind
	fragment string
}

var slots = map[string]slot{
	"query":       {name: "query", kind: slotText, fragment: `.+`},
	"category":    {name: "category", kind: slotText, fragment: `.+`},
	"currency":    {name: "currency", kind: slotMatch, fragment: `ghana cedis|cedis|ghc`},
	"price":       {name: "price", kind: slotInt, fragment: `\d+`},
	"quantity":    {name: "quantity", kind: slotInt, fragment: quantityFragment()},
	"order_id":    {name: "order_id", kind: slotToken, fragment: `.+`},
	"coupon_code": {name: "coupon_code", kind: slotToken, fragment: `.+`},
}

var placeholder = regexp.MustCompile(`\{([a-z_]+)\}`)

// expandTemplate rewrites {slot} placeholders into named capture groups.
// Match-only slots become non-capturing groups.
func expandTemplate(tmpl string) (string, error) {
	var unknown []string
	expr := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := m[1 : len(m)-1]
		s, ok := slots[name]
		if !ok {
			unknown = append(unknown, name)
			return m
		}
		if s.kind == slotMatch {
			return fmt.Sprintf("(?:%s)", s.fragment)
		}
		return fmt.Sprintf("(?P<%s>%s)", s.name, s.fragment)
	})
	if len(unknown) > 0 {
		return "", fmt.Errorf("unknown slot %q", unknown[0])
	}
	return expr, nil
}

// convert turns a raw capture into the slot's typed value. ok is false when
// the capture cannot be parsed or is a zero number; the parameter is then
// omitted.
func (s slot) convert(raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	switch s.kind {
	case slotInt:
		n, ok := parseNumber(raw)
		return n, ok && n != 0
	case slotToken:
		fields := strings.Fields(raw)
		return fields[len(fields)-1], true
	default:
		return raw, true
	}
}

// numberWords is the spelled-out number table, in lookup order.
var numberWords = []struct {
	word  string
	value int
}{
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
	{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
	{"eleven", 11}, {"twelve", 12}, {"thirteen", 13}, {"fourteen", 14},
	{"fifteen", 15}, {"sixteen", 16}, {"seventeen", 17}, {"eighteen", 18},
	{"nineteen", 19}, {"twenty", 20}, {"thirty", 30}, {"forty", 40},
	{"fifty", 50}, {"hundred", 100}, {"thousand", 1000},
}

// quantityFragment matches a digit run or a number word. Longer words come
// first so "fourteen" is not read as "four".
func quantityFragment() string {
	words := make([]string, len(numberWords))
	for i, n := range numberWords {
		words[i] = n.word
	}
	sort.SliceStable(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })
	return `(?:\d+|` + strings.Join(words, "|") + `)\b`
}

// parseNumber reads a digit run or a number word.
func parseNumber(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	for _, n := range numberWords {
		if n.word == s {
			return n.value, true
		}
	}
	return 0, false
}
