package tui

import (
	"errors"
	"testing"
)

func TestStringValidator(t *testing.T) {
	errEmpty := errors.New("empty")
	validate := stringValidator(func(s string) error {
		if s == "" {
			return errEmpty
		}
		return nil
	})

	if err := validate("Ada"); err != nil {
		t.Fatalf("expected valid answer, got %v", err)
	}
	if err := validate(""); !errors.Is(err, errEmpty) {
		t.Fatalf("expected errEmpty, got %v", err)
	}
	if err := validate(42); err == nil {
		t.Fatalf("expected error for non-string answer")
	}
}
