package openapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-cvform/pkg/model"
)

const (
	extSection      = "x-cv-section"
	extMultiplicity = "x-cv-multiplicity"
	extOrder        = "x-cv-order"
	extInput        = "x-cv-input"
	extPlaceholder  = "x-placeholder"

	// longTextThreshold is the maxLength above which a string property is
	// edited as long text.
	longTextThreshold = 200
)

// ParseOptions configures LoadSections.
type ParseOptions struct {
	// Validate runs the kin-openapi document validation (examples excluded)
	// before sections are extracted.
	Validate bool
	// AllowExternalRefs lets the kin-openapi loader follow external $refs.
	AllowExternalRefs bool
}

// ParseOption mutates ParseOptions.
type ParseOption func(*ParseOptions)

// WithValidation enables document validation.
func WithValidation() ParseOption {
	return func(opts *ParseOptions) {
		opts.Validate = true
	}
}

// WithExternalRefs allows external references.
func WithExternalRefs() ParseOption {
	return func(opts *ParseOptions) {
		opts.AllowExternalRefs = true
	}
}

// LoadSections parses an OpenAPI document (JSON or YAML) and returns the
// section schemas it declares, sorted by component name. The result is raw:
// pass it to registry.New for defaults and validation.
func LoadSections(ctx context.Context, data []byte, options ...ParseOption) ([]model.SectionSchema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	opts := ParseOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: opts.AllowExternalRefs,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if opts.Validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return SectionsFromDocument(doc)
}

// SectionsFromDocument extracts sections from an already loaded document.
func SectionsFromDocument(doc *openapi3.T) ([]model.SectionSchema, error) {
	if doc == nil || doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document declares no component schemas")
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	var sections []model.SectionSchema
	for _, name := range names {
		ref := doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		sectionName, ok := sectionExtension(ref.Value.Extensions, name)
		if !ok {
			continue
		}
		section, err := convertSection(sectionName, ref.Value)
		if err != nil {
			return nil, fmt.Errorf("openapi: component %q: %w", name, err)
		}
		sections = append(sections, section)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("openapi: no component schema carries %s", extSection)
	}
	return sections, nil
}

func convertSection(name string, schema *openapi3.Schema) (model.SectionSchema, error) {
	target := schema
	multiplicity := model.Multiplicity(stringExtension(schema.Extensions, extMultiplicity))
	if schema.Type.Is("array") {
		if schema.Items == nil || schema.Items.Value == nil {
			return model.SectionSchema{}, errors.New("array schema has no items")
		}
		target = schema.Items.Value
		if multiplicity == "" {
			multiplicity = model.MultiplicityMany
		}
	}
	if len(target.Properties) == 0 {
		return model.SectionSchema{}, errors.New("schema declares no properties")
	}

	required := make(map[string]struct{}, len(target.Required))
	for _, key := range target.Required {
		required[key] = struct{}{}
	}

	type orderedField struct {
		order int
		field model.FieldDescriptor
	}
	fields := make([]orderedField, 0, len(target.Properties))
	for key, ref := range target.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		field, err := convertField(key, ref.Value)
		if err != nil {
			return model.SectionSchema{}, err
		}
		_, field.Required = required[key]
		order, ok := intExtension(ref.Value.Extensions, extOrder)
		if !ok {
			order = math.MaxInt
		}
		fields = append(fields, orderedField{order: order, field: field})
	}
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].order != fields[j].order {
			return fields[i].order < fields[j].order
		}
		return fields[i].field.Key < fields[j].field.Key
	})

	section := model.SectionSchema{
		Name:         name,
		Title:        strings.TrimSpace(schema.Title),
		Multiplicity: multiplicity,
		Fields:       make([]model.FieldDescriptor, 0, len(fields)),
	}
	for _, entry := range fields {
		section.Fields = append(section.Fields, entry.field)
	}
	return section, nil
}

func convertField(key string, schema *openapi3.Schema) (model.FieldDescriptor, error) {
	if schema.Type != nil && !schema.Type.Permits("string") && !schema.Type.Permits("integer") && !schema.Type.Permits("number") {
		return model.FieldDescriptor{}, fmt.Errorf("property %q has unsupported type %v", key, schema.Type.Slice())
	}

	kind, err := inputKind(schema)
	if err != nil {
		return model.FieldDescriptor{}, fmt.Errorf("property %q: %w", key, err)
	}

	placeholder := stringExtension(schema.Extensions, extPlaceholder)
	if placeholder == "" && schema.Example != nil {
		placeholder = strings.TrimSpace(fmt.Sprint(schema.Example))
	}
	if placeholder == "" {
		placeholder = strings.TrimSpace(schema.Description)
	}

	return model.FieldDescriptor{
		Key:         key,
		Label:       strings.TrimSpace(schema.Title),
		Placeholder: placeholder,
		Kind:        kind,
	}, nil
}

func inputKind(schema *openapi3.Schema) (model.InputKind, error) {
	if raw := stringExtension(schema.Extensions, extInput); raw != "" {
		kind, ok := model.ParseInputKind(raw)
		if !ok {
			return "", fmt.Errorf("unsupported %s %q", extInput, raw)
		}
		return kind, nil
	}
	switch strings.ToLower(strings.TrimSpace(schema.Format)) {
	case "email", "idn-email":
		return model.InputKindEmail, nil
	case "date":
		return model.InputKindDate, nil
	case "phone", "tel":
		return model.InputKindPhone, nil
	case "textarea":
		return model.InputKindLongText, nil
	}
	if schema.MaxLength != nil && *schema.MaxLength > longTextThreshold {
		return model.InputKindLongText, nil
	}
	return model.InputKindShortText, nil
}

func sectionExtension(ext map[string]any, component string) (string, bool) {
	switch v := ext[extSection].(type) {
	case string:
		name := strings.TrimSpace(v)
		return name, name != ""
	case bool:
		if !v {
			return "", false
		}
		return lowerFirst(component), true
	default:
		return "", false
	}
}

func stringExtension(ext map[string]any, key string) string {
	if value, ok := ext[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func intExtension(ext map[string]any, key string) (int, bool) {
	switch v := ext[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

func lowerFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToLower(r)) + s[i+len(string(r)):]
	}
	return s
}
