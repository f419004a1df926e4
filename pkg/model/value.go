package model

import "encoding/json"

// Value holds a field's text or records that the field was never edited.
// The zero Value is unset.
type Value struct {
	text string
	set  bool
}

// Unset returns the never-edited value.
func Unset() Value {
	return Value{}
}

// Text returns a present value. The empty string is a valid, user-cleared
// value and is distinct from Unset.
func Text(s string) Value {
	return Value{text: s, set: true}
}

// IsSet reports whether the field has been edited.
func (v Value) IsSet() bool {
	return v.set
}

// String returns the text, or "" when unset.
func (v Value) String() string {
	return v.text
}

// Get returns the text together with the set flag.
func (v Value) Get() (string, bool) {
	return v.text, v.set
}

// MarshalJSON encodes unset as null and set values as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts null (unset) or a string.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Unset()
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*v = Text(text)
	return nil
}
