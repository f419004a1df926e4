// Package draft derives per-section state from a model.SectionSchema.
//
// DeriveBlankRecord creates a DraftRecord whose key set is exactly the
// schema's key set, every value unset. ApplyFieldUpdate is the only way to
// change a draft: it rejects undeclared keys with *model.UnknownFieldKeyError
// and returns a new record, leaving its input untouched. ToSubmittedRecord
// snapshots a draft into an immutable SubmittedRecord, collapsing unset
// values to the empty string.
//
// None of these functions perform I/O; callers own the state cell that holds
// the current record (see pkg/session).
package draft
