package draft

import (
	"strings"

	"github.com/goliatone/go-cvform/pkg/model"
)

// DeriveBlankRecord returns a record with one unset entry per descriptor of
// schema.
func DeriveBlankRecord(schema model.SectionSchema) DraftRecord {
	keys := schema.Keys()
	values := make(map[string]model.Value, len(keys))
	for _, key := range keys {
		values[key] = model.Unset()
	}
	return DraftRecord{
		section: schema.Name,
		keys:    keys,
		values:  values,
	}
}

// ApplyFieldUpdate returns a copy of record with key set to value. It fails
// with *model.UnknownFieldKeyError when key is not declared, in which case
// the returned record is the unchanged input.
func ApplyFieldUpdate(record DraftRecord, key, value string) (DraftRecord, error) {
	if !record.Has(key) {
		return record, &model.UnknownFieldKeyError{Section: record.section, Key: key}
	}
	next := record.clone()
	next.values[key] = model.Text(value)
	return next, nil
}

// SubmitOption configures ToSubmittedRecord.
type SubmitOption func(*submitConfig)

type submitConfig struct {
	schema   *model.SectionSchema
	complete bool
}

// RequireComplete enforces the Required flag of schema descriptors: required
// keys that are unset or blank fail the submission with
// *model.IncompleteRecordError. Without this option no completeness check
// runs.
func RequireComplete(schema model.SectionSchema) SubmitOption {
	return func(cfg *submitConfig) {
		cloned := schema.Clone()
		cfg.schema = &cloned
		cfg.complete = true
	}
}

// ToSubmittedRecord copies every key of record, substituting unset values
// with the empty string.
func ToSubmittedRecord(record DraftRecord, options ...SubmitOption) (SubmittedRecord, error) {
	cfg := submitConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.complete && cfg.schema != nil {
		var missing []string
		for _, field := range cfg.schema.Fields {
			if !field.Required {
				continue
			}
			value, ok := record.Get(field.Key)
			if !ok || strings.TrimSpace(value.String()) == "" {
				missing = append(missing, field.Key)
			}
		}
		if len(missing) > 0 {
			return SubmittedRecord{}, &model.IncompleteRecordError{Section: record.section, Missing: missing}
		}
	}

	values := make(map[string]string, len(record.values))
	for key, value := range record.values {
		values[key] = value.String()
	}
	return SubmittedRecord{
		section: record.section,
		keys:    record.Keys(),
		values:  values,
	}, nil
}

// NewSubmittedRecord builds a record directly from final values. Keys missing
// from values become empty strings; undeclared keys fail with
// *model.UnknownFieldKeyError.
func NewSubmittedRecord(schema model.SectionSchema, values map[string]string) (SubmittedRecord, error) {
	record := DeriveBlankRecord(schema)
	for key, value := range values {
		var err error
		record, err = ApplyFieldUpdate(record, key, value)
		if err != nil {
			return SubmittedRecord{}, err
		}
	}
	return ToSubmittedRecord(record)
}
