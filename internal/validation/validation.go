package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// FieldError is one violated constraint on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations collects every failed check on an entity. Checks never stop at
// the first failure so callers can report all problems at once.
type Violations []FieldError

func (v Violations) Empty() bool { return len(v) == 0 }

func (v *Violations) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// Fields returns the distinct field names carrying violations.
func (v Violations) Fields() []string {
	seen := map[string]bool{}
	var out []string
	for _, fe := range v {
		if !seen[fe.Field] {
			seen[fe.Field] = true
			out = append(out, fe.Field)
		}
	}
	return out
}

// Basic validators

func Required(field, value string, v *Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "required")
	}
}

// Length checks rune length bounds, inclusive. Empty values are skipped;
// combine with Required when the field is mandatory.
func Length(field, value string, minLen, maxLen int, v *Violations) {
	if value == "" {
		return
	}
	n := len([]rune(value))
	if n < minLen {
		v.Add(field, fmt.Sprintf("must_be_at_least_%d_chars", minLen))
	}
	if n > maxLen {
		v.Add(field, fmt.Sprintf("must_be_at_most_%d_chars", maxLen))
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v *Violations) {
	if val < minVal || val > maxVal {
		v.Add(field, "out_of_range")
	}
}

func RangeInt(field string, val, minVal, maxVal int, v *Violations) {
	if val < minVal || val > maxVal {
		v.Add(field, "out_of_range")
	}
}

// Pattern checks a non-empty value against re.
func Pattern(field, value string, re *regexp.Regexp, v *Violations) {
	if value == "" {
		return
	}
	if !re.MatchString(value) {
		v.Add(field, "invalid_format")
	}
}

// NotFuture rejects timestamps after now; nil is accepted.
func NotFuture(field string, t *time.Time, v *Violations) {
	if t != nil && t.After(time.Now()) {
		v.Add(field, "in_the_future")
	}
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// ImageReference checks that an optional image path carries one of the
// accepted extensions (jpg, jpeg, png, gif).
func ImageReference(field, value string, v *Violations) {
	if value == "" {
		return
	}
	ext := strings.ToLower(filepath.Ext(value))
	if !imageExtensions[ext] {
		v.Add(field, "invalid_extension")
	}
}
