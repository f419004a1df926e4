package registry

import (
	"fmt"

	internalmodel "github.com/goliatone/go-cvform/internal/model"
	"github.com/goliatone/go-cvform/pkg/model"
)

// Registry stores section schemas by name. It is safe for concurrent readers:
// nothing mutates it after New returns.
type Registry struct {
	order    []string
	sections map[string]model.SectionSchema
}

// Option configures registry construction.
type Option func(*internalmodel.Options)

// WithLabeler overrides the caption derivation applied to descriptors that
// omit a label.
func WithLabeler(labeler func(string) string) Option {
	return func(opts *internalmodel.Options) {
		opts.Labeler = labeler
	}
}

// New validates and registers the supplied schemas in order. Section names
// must be unique; see internal/model for per-section rules.
func New(schemas []model.SectionSchema, options ...Option) (*Registry, error) {
	cfg := internalmodel.Options{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	normalizer := internalmodel.New(cfg)

	reg := &Registry{
		order:    make([]string, 0, len(schemas)),
		sections: make(map[string]model.SectionSchema, len(schemas)),
	}
	for _, raw := range schemas {
		schema, err := normalizer.Section(raw)
		if err != nil {
			return nil, fmt.Errorf("registry: %w", err)
		}
		if _, exists := reg.sections[schema.Name]; exists {
			return nil, fmt.Errorf("registry: section %q already registered", schema.Name)
		}
		reg.sections[schema.Name] = schema
		reg.order = append(reg.order, schema.Name)
	}
	if len(reg.order) == 0 {
		return nil, fmt.Errorf("registry: no sections defined")
	}
	return reg, nil
}

// MustNew panics on construction failure. Useful for init-time wiring.
func MustNew(schemas []model.SectionSchema, options ...Option) *Registry {
	reg, err := New(schemas, options...)
	if err != nil {
		panic(err)
	}
	return reg
}

// Schema returns a copy of the schema registered under name, or an
// *model.UnknownSectionError.
func (r *Registry) Schema(name string) (model.SectionSchema, error) {
	if r != nil {
		if schema, ok := r.sections[name]; ok {
			return schema.Clone(), nil
		}
	}
	return model.SectionSchema{}, &model.UnknownSectionError{Section: name}
}

// MustSchema panics if the section is missing.
func (r *Registry) MustSchema(name string) model.SectionSchema {
	schema, err := r.Schema(name)
	if err != nil {
		panic(err)
	}
	return schema
}

// Has reports whether a section is registered.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.sections[name]
	return ok
}

// Sections returns the registered names in registration order.
func (r *Registry) Sections() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Schemas returns copies of every schema in registration order.
func (r *Registry) Schemas() []model.SectionSchema {
	if r == nil {
		return nil
	}
	out := make([]model.SectionSchema, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.sections[name].Clone())
	}
	return out
}
