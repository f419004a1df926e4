// Package validation provides the advisory value checks implied by a
// descriptor's input kind. They never block updates: the draft deriver
// accepts any string for a declared key. Hosts use them to surface hints
// (HTML renderers) or to re-prompt (terminal sessions).
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-cvform/pkg/model"
)

// DateLayout is the wire format for date fields, matching the value of an
// HTML date input.
const DateLayout = "2006-01-02"

var (
	ErrInvalidEmail = errors.New("not a valid email address")
	ErrInvalidPhone = errors.New("not a valid phone number")
	ErrInvalidDate  = errors.New("not a valid date (YYYY-MM-DD)")

	phonePattern = regexp.MustCompile(`^\+?[0-9 ().\-]{5,20}$`)
)

// Value checks value against the default rules of kind. Empty and
// whitespace-only values always pass.
func Value(kind model.InputKind, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	switch kind {
	case model.InputKindEmail:
		addr, err := mail.ParseAddress(trimmed)
		if err != nil || addr.Address != trimmed {
			return ErrInvalidEmail
		}
	case model.InputKindPhone:
		if !phonePattern.MatchString(trimmed) || countDigits(trimmed) < 5 {
			return ErrInvalidPhone
		}
	case model.InputKindDate:
		if _, err := time.Parse(DateLayout, trimmed); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

// Field checks value against the descriptor's kind and wraps failures with
// the descriptor label.
func Field(field model.FieldDescriptor, value string) error {
	if err := Value(field.Kind, value); err != nil {
		label := field.Label
		if label == "" {
			label = field.Key
		}
		return fmt.Errorf("%s: %w", label, err)
	}
	return nil
}

// Record runs Field for every descriptor of schema and returns messages keyed
// by field key. Keys missing from values are skipped.
func Record(schema model.SectionSchema, values map[string]string) map[string][]string {
	var out map[string][]string
	for _, field := range schema.Fields {
		value, ok := values[field.Key]
		if !ok {
			continue
		}
		if err := Value(field.Kind, value); err != nil {
			if out == nil {
				out = make(map[string][]string)
			}
			out[field.Key] = append(out[field.Key], err.Error())
		}
	}
	return out
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
