package model

import (
	"fmt"
	"strings"

	pkgmodel "github.com/goliatone/go-cvform/pkg/model"
)

// Normalizer validates raw section definitions and fills derived defaults
// (labels, titles, multiplicity, canonical input kinds).
type Normalizer struct {
	opts Options
}

// New creates a Normalizer with the supplied options.
func New(options Options) *Normalizer {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.DefaultMultiplicity != nil {
		opts.DefaultMultiplicity = options.DefaultMultiplicity
	}
	return &Normalizer{opts: opts}
}

// Section returns a normalised copy of schema or an error describing the
// first structural problem found.
func (n *Normalizer) Section(schema pkgmodel.SectionSchema) (pkgmodel.SectionSchema, error) {
	out := schema.Clone()
	out.Name = strings.TrimSpace(out.Name)
	if out.Name == "" {
		return pkgmodel.SectionSchema{}, fmt.Errorf("section name is required")
	}
	if strings.TrimSpace(out.Title) == "" {
		out.Title = n.opts.Labeler(out.Name)
	}

	switch strings.ToLower(strings.TrimSpace(string(out.Multiplicity))) {
	case "":
		out.Multiplicity = pkgmodel.Multiplicity(n.opts.DefaultMultiplicity(out.Name))
	case string(pkgmodel.MultiplicitySingle), "one":
		out.Multiplicity = pkgmodel.MultiplicitySingle
	case string(pkgmodel.MultiplicityMany), "list":
		out.Multiplicity = pkgmodel.MultiplicityMany
	default:
		return pkgmodel.SectionSchema{}, fmt.Errorf("section %q: unsupported multiplicity %q", out.Name, out.Multiplicity)
	}

	if len(out.Fields) == 0 {
		return pkgmodel.SectionSchema{}, fmt.Errorf("section %q declares no fields", out.Name)
	}

	seen := make(map[string]struct{}, len(out.Fields))
	for idx := range out.Fields {
		field := &out.Fields[idx]
		field.Key = strings.TrimSpace(field.Key)
		if field.Key == "" {
			return pkgmodel.SectionSchema{}, fmt.Errorf("section %q: field %d has an empty key", out.Name, idx)
		}
		if _, dup := seen[field.Key]; dup {
			return pkgmodel.SectionSchema{}, fmt.Errorf("section %q: duplicate field key %q", out.Name, field.Key)
		}
		seen[field.Key] = struct{}{}

		kind, ok := pkgmodel.ParseInputKind(string(field.Kind))
		if !ok {
			return pkgmodel.SectionSchema{}, fmt.Errorf("section %q: field %q has unsupported input kind %q", out.Name, field.Key, field.Kind)
		}
		field.Kind = kind

		if strings.TrimSpace(field.Label) == "" {
			field.Label = n.opts.Labeler(field.Key)
		}
		field.Placeholder = strings.TrimSpace(field.Placeholder)
	}

	return out, nil
}
