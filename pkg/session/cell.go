package session

import (
	"github.com/goliatone/go-cvform/pkg/draft"
	"github.com/goliatone/go-cvform/pkg/model"
)

// SectionCell owns the current draft of one section.
type SectionCell struct {
	schema model.SectionSchema
	record draft.DraftRecord
}

// NewSectionCell mounts a cell with a blank draft for schema.
func NewSectionCell(schema model.SectionSchema) *SectionCell {
	cloned := schema.Clone()
	return &SectionCell{
		schema: cloned,
		record: draft.DeriveBlankRecord(cloned),
	}
}

// Schema returns a copy of the cell's schema.
func (c *SectionCell) Schema() model.SectionSchema {
	return c.schema.Clone()
}

// Draft returns the current record. Records are values; later updates do
// not affect a record already returned.
func (c *SectionCell) Draft() draft.DraftRecord {
	return c.record
}

// Update applies one field edit. On error the held draft is unchanged.
func (c *SectionCell) Update(key, value string) error {
	next, err := draft.ApplyFieldUpdate(c.record, key, value)
	if err != nil {
		return err
	}
	c.record = next
	return nil
}

// Reset replaces the draft with a blank one.
func (c *SectionCell) Reset() {
	c.record = draft.DeriveBlankRecord(c.schema)
}

// Submit snapshots the draft and resets the cell. On error the draft is
// kept.
func (c *SectionCell) Submit(options ...draft.SubmitOption) (draft.SubmittedRecord, error) {
	submitted, err := draft.ToSubmittedRecord(c.record, options...)
	if err != nil {
		return draft.SubmittedRecord{}, err
	}
	c.Reset()
	return submitted, nil
}
