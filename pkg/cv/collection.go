// Package cv holds the aggregate of submitted records. A Collection keeps at
// most one record for single-multiplicity sections (general information) and
// an ordered, append-only list for repeatable sections (education,
// experience). It never shrinks.
package cv

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/goliatone/go-cvform/pkg/draft"
	"github.com/goliatone/go-cvform/pkg/model"
)

// Entry is one submitted record plus the identifier renderers bind to.
type Entry struct {
	ID     string                `json:"id"`
	Record draft.SubmittedRecord `json:"record"`
}

// Collection is not safe for concurrent writers; owners serialise access
// (see pkg/session).
type Collection struct {
	single map[string]Entry
	lists  map[string][]Entry
	newID  func() string
}

// Option configures a Collection.
type Option func(*Collection)

// WithIDGenerator overrides the entry id source (uuid v4 by default).
func WithIDGenerator(fn func() string) Option {
	return func(c *Collection) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New returns an empty collection.
func New(options ...Option) *Collection {
	c := &Collection{
		single: make(map[string]Entry),
		lists:  make(map[string][]Entry),
		newID:  uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Add stores record according to the schema multiplicity: replace for
// single sections, append for repeatable ones. The record must belong to the
// schema and carry exactly its key set.
func (c *Collection) Add(schema model.SectionSchema, record draft.SubmittedRecord) (Entry, error) {
	if c == nil {
		return Entry{}, fmt.Errorf("cv: collection is nil")
	}
	if record.Section() != schema.Name {
		return Entry{}, fmt.Errorf("cv: record for section %q cannot be added to %q", record.Section(), schema.Name)
	}
	if err := matchKeys(schema, record); err != nil {
		return Entry{}, err
	}

	entry := Entry{ID: c.newID(), Record: record}
	if schema.Repeatable() {
		c.lists[schema.Name] = append(c.lists[schema.Name], entry)
	} else {
		c.single[schema.Name] = entry
	}
	return entry, nil
}

// GeneralSection names the section holding the CV's general information.
const GeneralSection = "general"

// General returns the general information record, if one was submitted.
func (c *Collection) General() (Entry, bool) {
	return c.Single(GeneralSection)
}

// Single returns the record stored for a single-multiplicity section.
func (c *Collection) Single(section string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	entry, ok := c.single[section]
	return entry, ok
}

// Entries returns a copy of the ordered records of a repeatable section.
func (c *Collection) Entries(section string) []Entry {
	if c == nil {
		return nil
	}
	return append([]Entry(nil), c.lists[section]...)
}

// Len reports how many records the section holds.
func (c *Collection) Len(section string) int {
	if c == nil {
		return 0
	}
	if _, ok := c.single[section]; ok {
		return 1
	}
	return len(c.lists[section])
}

// Snapshot returns every stored record grouped by section. Single sections
// yield a slice of length one.
func (c *Collection) Snapshot() map[string][]Entry {
	out := make(map[string][]Entry)
	if c == nil {
		return out
	}
	for section, entry := range c.single {
		out[section] = []Entry{entry}
	}
	for section, entries := range c.lists {
		out[section] = append([]Entry(nil), entries...)
	}
	return out
}

// MarshalJSON emits single sections as objects and repeatable sections as
// arrays of objects, keyed by section name.
func (c *Collection) MarshalJSON() ([]byte, error) {
	payload := make(map[string]any)
	if c != nil {
		for section, entry := range c.single {
			payload[section] = entry.Record
		}
		for section, entries := range c.lists {
			records := make([]draft.SubmittedRecord, 0, len(entries))
			for _, entry := range entries {
				records = append(records, entry.Record)
			}
			payload[section] = records
		}
	}
	return json.Marshal(payload)
}

func matchKeys(schema model.SectionSchema, record draft.SubmittedRecord) error {
	want := schema.Keys()
	got := record.Keys()
	sort.Strings(want)
	sort.Strings(got)
	if len(want) != len(got) {
		return fmt.Errorf("cv: record keys %v do not match section %q keys %v", got, schema.Name, want)
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("cv: record keys %v do not match section %q keys %v", got, schema.Name, want)
		}
	}
	return nil
}
