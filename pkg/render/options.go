package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching session state.
type RenderOptions struct {
	// Errors surfaces messages keyed by "section.key" (field level) or by
	// section name (section level). See FieldErrors.
	Errors map[string][]string
	// Notice is a one-off banner message, for example the outcome of the last
	// event.
	Notice string
	// Theme carries resolved theme tokens and partials. Renderers that do not
	// support theming ignore it.
	Theme *theme.RendererConfig
	// Action is the base path forms post to. Empty means "/".
	Action string
}

// FieldErrors returns the messages attached to one field.
func (o RenderOptions) FieldErrors(section, key string) []string {
	if len(o.Errors) == 0 {
		return nil
	}
	return o.Errors[FieldPath(section, key)]
}

// SectionErrors returns the messages attached to a whole section.
func (o RenderOptions) SectionErrors(section string) []string {
	if len(o.Errors) == 0 {
		return nil
	}
	return o.Errors[section]
}
