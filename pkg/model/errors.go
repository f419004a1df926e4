package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownSection matches UnknownSectionError through errors.Is.
	ErrUnknownSection = errors.New("unknown section")
	// ErrUnknownFieldKey matches UnknownFieldKeyError through errors.Is.
	ErrUnknownFieldKey = errors.New("unknown field key")
	// ErrIncompleteRecord matches IncompleteRecordError through errors.Is.
	ErrIncompleteRecord = errors.New("incomplete record")
)

// UnknownSectionError is returned when a section name has no registered
// schema. Callers should treat it as a programming error.
type UnknownSectionError struct {
	Section string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section %q", e.Section)
}

func (e *UnknownSectionError) Is(target error) bool {
	return target == ErrUnknownSection
}

// UnknownFieldKeyError is returned when an update targets a key the section
// schema does not declare. The record is never widened.
type UnknownFieldKeyError struct {
	Section string
	Key     string
}

func (e *UnknownFieldKeyError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("unknown field key %q", e.Key)
	}
	return fmt.Sprintf("unknown field key %q in section %q", e.Key, e.Section)
}

func (e *UnknownFieldKeyError) Is(target error) bool {
	return target == ErrUnknownFieldKey
}

// IncompleteRecordError lists required keys left unset or empty when a
// completeness policy is in force.
type IncompleteRecordError struct {
	Section string
	Missing []string
}

func (e *IncompleteRecordError) Error() string {
	return fmt.Sprintf("section %q is incomplete: missing %s", e.Section, strings.Join(e.Missing, ", "))
}

func (e *IncompleteRecordError) Is(target error) bool {
	return target == ErrIncompleteRecord
}
