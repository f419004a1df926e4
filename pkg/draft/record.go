package draft

import (
	"encoding/json"

	"github.com/goliatone/go-cvform/pkg/model"
)

// DraftRecord holds the in-progress values of one section. The zero value is
// an empty record that declares no keys; derive records with
// DeriveBlankRecord instead.
type DraftRecord struct {
	section string
	keys    []string
	values  map[string]model.Value
}

// Section reports the schema name the record was derived from.
func (r DraftRecord) Section() string {
	return r.section
}

// Keys returns the declared keys in schema order.
func (r DraftRecord) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Has reports whether key is declared for this record.
func (r DraftRecord) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Get returns the value stored under key and whether the key is declared.
func (r DraftRecord) Get(key string) (model.Value, bool) {
	value, ok := r.values[key]
	return value, ok
}

// Values returns a copy of the key to value mapping.
func (r DraftRecord) Values() map[string]model.Value {
	out := make(map[string]model.Value, len(r.values))
	for key, value := range r.values {
		out[key] = value
	}
	return out
}

// Equal reports whether both records share the section, key set and values.
func (r DraftRecord) Equal(other DraftRecord) bool {
	if r.section != other.section || len(r.values) != len(other.values) {
		return false
	}
	for key, value := range r.values {
		otherValue, ok := other.values[key]
		if !ok || otherValue != value {
			return false
		}
	}
	return true
}

// Touched reports whether any field has been edited.
func (r DraftRecord) Touched() bool {
	for _, value := range r.values {
		if value.IsSet() {
			return true
		}
	}
	return false
}

// MarshalJSON emits the values keyed by field; unset values encode as null.
func (r DraftRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.values)
}

func (r DraftRecord) clone() DraftRecord {
	return DraftRecord{
		section: r.section,
		keys:    r.keys,
		values:  r.Values(),
	}
}

// SubmittedRecord is an immutable snapshot of a draft taken at submission.
type SubmittedRecord struct {
	section string
	keys    []string
	values  map[string]string
}

// Section reports the schema name the record belongs to.
func (r SubmittedRecord) Section() string {
	return r.section
}

// Keys returns the record keys in schema order.
func (r SubmittedRecord) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Get returns the final text stored under key.
func (r SubmittedRecord) Get(key string) (string, bool) {
	value, ok := r.values[key]
	return value, ok
}

// Values returns a copy of the key to text mapping.
func (r SubmittedRecord) Values() map[string]string {
	out := make(map[string]string, len(r.values))
	for key, value := range r.values {
		out[key] = value
	}
	return out
}

// Fields returns key/value pairs in schema order for renderers.
func (r SubmittedRecord) Fields() []Field {
	out := make([]Field, 0, len(r.keys))
	for _, key := range r.keys {
		out = append(out, Field{Key: key, Value: r.values[key]})
	}
	return out
}

// MarshalJSON emits the values keyed by field.
func (r SubmittedRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.values)
}

// Field is one ordered key/value pair of a submitted record.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
