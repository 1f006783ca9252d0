package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/eskdev24/buyvia-voice-api/internal/types"
)

const (
	DefaultMaxTextLength   = 1000
	DefaultMaxBulkMappings = 500
	MaxDialectLength       = 64
	MaxStandardLength      = 128
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Collector accumulates validation errors without failing on first.
type Collector struct {
	errors []ValidationError
}

// Add appends a validation error to the collector if non-nil.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// HasErrors returns true if the collector has accumulated any errors.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all accumulated validation errors.
func (c *Collector) Errors() []ValidationError {
	return c.errors
}

// ValidateUTF8 returns an error if the value is not valid UTF-8.
func ValidateUTF8(field, value string) *ValidationError {
	if !utf8.ValidString(value) {
		return &ValidationError{
			Field:   field,
			Message: "must be valid UTF-8",
		}
	}
	return nil
}

// ValidateNoNullBytes returns an error if the value contains null bytes.
func ValidateNoNullBytes(field, value string) *ValidationError {
	if strings.Contains(value, "\x00") {
		return &ValidationError{
			Field:   field,
			Message: "must not contain null bytes",
		}
	}
	return nil
}

// ValidateMaxLength returns an error if the value exceeds max runes.
func ValidateMaxLength(field, value string, max int) *ValidationError {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", max),
		}
	}
	return nil
}

// ValidateULID returns an error unless value parses as a ULID.
func ValidateULID(field, value string) *ValidationError {
	if _, err := ulid.ParseStrict(value); err != nil {
		return &ValidationError{
			Field:   field,
			Message: "must be a valid ULID",
		}
	}
	return nil
}

// ValidateRequired returns an error if the value is empty or whitespace-only.
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: "is required",
		}
	}
	return nil
}

// ValidateEnum returns an error if the value is not in the allowed list.
func ValidateEnum(field, value string, allowed []string) *ValidationError {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// ValidateSingleToken returns an error if the value contains whitespace.
// Dialect keys are matched one token at a time, so a key with a space could
// never be reached.
func ValidateSingleToken(field, value string) *ValidationError {
	if strings.IndexFunc(strings.TrimSpace(value), unicode.IsSpace) >= 0 {
		return &ValidationError{
			Field:   field,
			Message: "must be a single word",
		}
	}
	return nil
}

// validateString runs the checks shared by every free-text field.
func validateString(c *Collector, field, value string, max int) {
	c.Add(ValidateUTF8(field, value))
	c.Add(ValidateNoNullBytes(field, value))
	c.Add(ValidateMaxLength(field, value, max))
}

// ValidateTextRequest validates a /parse or /normalize body. Empty text is
// allowed and classifies as unknown.
func ValidateTextRequest(req types.TextRequest, maxLen int) []ValidationError {
	c := &Collector{}
	validateString(c, "text", req.Text, maxLen)
	return c.Errors()
}

func validateMapping(c *Collector, dialectField, standardField, dialect, standard string) {
	c.Add(ValidateRequired(dialectField, dialect))
	c.Add(ValidateSingleToken(dialectField, dialect))
	validateString(c, dialectField, dialect, MaxDialectLength)

	c.Add(ValidateRequired(standardField, standard))
	validateString(c, standardField, standard, MaxStandardLength)
}

// ValidateMappingRequest validates a single learned mapping.
func ValidateMappingRequest(req types.MappingRequest) []ValidationError {
	c := &Collector{}
	validateMapping(c, "dialect", "standard", req.Dialect, req.Standard)
	return c.Errors()
}

// ValidateBulkMappingsRequest validates a bulk load. Errors are reported in
// key order.
func ValidateBulkMappingsRequest(req types.BulkMappingsRequest, maxBatch int) []ValidationError {
	c := &Collector{}

	if len(req.Mappings) == 0 {
		c.Add(&ValidationError{Field: "mappings", Message: "must not be empty"})
		return c.Errors()
	}
	if len(req.Mappings) > maxBatch {
		c.Add(&ValidationError{
			Field:   "mappings",
			Message: fmt.Sprintf("exceeds maximum batch size of %d", maxBatch),
		})
		return c.Errors()
	}

	keys := make([]string, 0, len(req.Mappings))
	for k := range req.Mappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		field := fmt.Sprintf("mappings[%s]", k)
		validateMapping(c, field, field, k, req.Mappings[k])
	}
	return c.Errors()
}

// ValidateSuggestionRequest validates a proposed standard spelling.
func ValidateSuggestionRequest(req types.SuggestionRequest) []ValidationError {
	c := &Collector{}
	c.Add(ValidateRequired("suggested_mapping", req.SuggestedMapping))
	validateString(c, "suggested_mapping", req.SuggestedMapping, MaxStandardLength)
	return c.Errors()
}
