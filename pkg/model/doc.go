// Package model defines the section schema types shared by the registry, the
// draft deriver and the renderers. A SectionSchema is an ordered list of
// FieldDescriptor values; descriptor keys double as state dictionary keys and
// as the `name` attribute renderers bind inputs to. InputKind selects both the
// control a renderer emits and the advisory checks in pkg/validation.
//
// Value models the two states a field can be in: unset (never edited) and set
// (a present string, possibly empty). The distinction survives until a draft
// is submitted, at which point unset collapses to the empty string.
//
// The error kinds (UnknownSectionError, UnknownFieldKeyError,
// IncompleteRecordError) are returned by every package in the module and
// match their Err* sentinels through errors.Is.
package model
