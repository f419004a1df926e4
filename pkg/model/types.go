package model

import "strings"

// InputKind is the closed set of field kinds a descriptor may declare.
type InputKind string

const (
	InputKindShortText InputKind = "short-text"
	InputKindEmail     InputKind = "email"
	InputKindPhone     InputKind = "phone"
	InputKindDate      InputKind = "date"
	InputKindLongText  InputKind = "long-text"
)

// InputKinds lists every supported kind in declaration order.
func InputKinds() []InputKind {
	return []InputKind{
		InputKindShortText,
		InputKindEmail,
		InputKindPhone,
		InputKindDate,
		InputKindLongText,
	}
}

// Valid reports whether k is one of the supported kinds.
func (k InputKind) Valid() bool {
	switch k {
	case InputKindShortText, InputKindEmail, InputKindPhone, InputKindDate, InputKindLongText:
		return true
	default:
		return false
	}
}

// HTMLType maps the kind onto the input type attribute used by HTML
// renderers. Long text renders as a textarea and reports "textarea".
func (k InputKind) HTMLType() string {
	switch k {
	case InputKindEmail:
		return "email"
	case InputKindPhone:
		return "tel"
	case InputKindDate:
		return "date"
	case InputKindLongText:
		return "textarea"
	default:
		return "text"
	}
}

// ParseInputKind normalises user supplied kind names. Aliases such as "text",
// "tel" or "textarea" resolve to their canonical kind.
func ParseInputKind(raw string) (InputKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "short-text", "shorttext", "text", "string":
		return InputKindShortText, true
	case "email":
		return InputKindEmail, true
	case "phone", "tel", "telephone":
		return InputKindPhone, true
	case "date":
		return InputKindDate, true
	case "long-text", "longtext", "textarea", "multiline":
		return InputKindLongText, true
	default:
		return "", false
	}
}

// Multiplicity controls how submitted records of a section are collected.
type Multiplicity string

const (
	// MultiplicitySingle keeps at most one submitted record; a new
	// submission replaces the previous one.
	MultiplicitySingle Multiplicity = "single"
	// MultiplicityMany appends every submission, preserving order.
	MultiplicityMany Multiplicity = "many"
)

// FieldDescriptor describes one input of a form section.
type FieldDescriptor struct {
	Key         string    `json:"key" yaml:"key"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Kind        InputKind `json:"inputKind" yaml:"inputKind"`
	// Required is only consulted by the opt-in completeness policy of
	// draft.ToSubmittedRecord.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`
}

// SectionSchema is the ordered field list of one logical CV section. Values
// are treated as immutable once registered; use the accessors rather than
// mutating Fields in place.
type SectionSchema struct {
	Name         string            `json:"name" yaml:"name"`
	Title        string            `json:"title,omitempty" yaml:"title,omitempty"`
	Multiplicity Multiplicity      `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty"`
	Fields       []FieldDescriptor `json:"fields" yaml:"fields"`
}

// Keys returns the declared keys in display order.
func (s SectionSchema) Keys() []string {
	keys := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		keys = append(keys, field.Key)
	}
	return keys
}

// Field returns the descriptor registered under key.
func (s SectionSchema) Field(key string) (FieldDescriptor, bool) {
	for _, field := range s.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

// HasKey reports whether key is declared by the schema.
func (s SectionSchema) HasKey(key string) bool {
	_, ok := s.Field(key)
	return ok
}

// Repeatable reports whether the section collects more than one record.
func (s SectionSchema) Repeatable() bool {
	return s.Multiplicity == MultiplicityMany
}

// Clone returns a deep copy so callers cannot alias registry storage.
func (s SectionSchema) Clone() SectionSchema {
	out := s
	if s.Fields != nil {
		out.Fields = append([]FieldDescriptor(nil), s.Fields...)
	}
	return out
}
