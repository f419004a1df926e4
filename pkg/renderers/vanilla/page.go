package vanilla

import (
	"net/url"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cvform/pkg/model"
	"github.com/goliatone/go-cvform/pkg/render"
	"github.com/goliatone/go-cvform/pkg/session"
	"github.com/goliatone/go-cvform/pkg/toggle"
)

// pageData flattens a view into plain maps so templates only deal with
// strings, booleans and slices.
func (r *Renderer) pageData(view session.View, options render.RenderOptions) map[string]any {
	base := strings.TrimRight(strings.TrimSpace(options.Action), "/")

	stylesheets := append([]string(nil), r.stylesheets...)
	if href := themeStylesheet(options.Theme); href != "" {
		stylesheets = append(stylesheets, href)
	}

	sections := make([]map[string]any, 0, len(view.Sections))
	for _, section := range view.Sections {
		sections = append(sections, sectionData(section, base, options))
	}

	content := view.Toggle
	if content == nil {
		content = toggle.Hamburger{}
	}

	return map[string]any{
		"title":       r.title,
		"stylesheet":  r.stylesheet,
		"stylesheets": stylesheets,
		"theme":       themeData(options.Theme),
		"notice":      strings.TrimSpace(options.Notice),
		"panel": map[string]any{
			"open":  view.Panel.IsOpen(),
			"state": view.Panel.State(),
		},
		"toggle": map[string]any{
			"kind":  string(content.Kind()),
			"label": toggle.Label(content),
			"html":  toggle.RenderHTML(content),
		},
		"toggle_action": base + "/panel/toggle",
		"sections":      sections,
	}
}

func sectionData(section session.SectionView, base string, options render.RenderOptions) map[string]any {
	schema := section.Schema

	fields := make([]map[string]any, 0, len(schema.Fields))
	for _, field := range schema.Fields {
		value := ""
		if current, ok := section.Draft.Get(field.Key); ok {
			value = current.String()
		}
		fields = append(fields, map[string]any{
			"id":          fieldID(schema.Name, field.Key),
			"key":         field.Key,
			"label":       field.Label,
			"placeholder": field.Placeholder,
			"kind":        string(field.Kind),
			"type":        field.Kind.HTMLType(),
			"multiline":   field.Kind == model.InputKindLongText,
			"required":    field.Required,
			"value":       value,
			"errors":      options.FieldErrors(schema.Name, field.Key),
		})
	}

	entries := make([]map[string]any, 0, len(section.Entries))
	for _, entry := range section.Entries {
		entryFields := make([]map[string]any, 0, len(schema.Fields))
		for _, field := range schema.Fields {
			value, _ := entry.Record.Get(field.Key)
			entryFields = append(entryFields, map[string]any{
				"key":   field.Key,
				"label": field.Label,
				"lines": strings.Split(value, "\n"),
			})
		}
		entries = append(entries, map[string]any{
			"id":     entry.ID,
			"fields": entryFields,
		})
	}

	submitLabel := "Submit"
	if schema.Repeatable() {
		submitLabel = "Add entry"
	}

	return map[string]any{
		"name":         schema.Name,
		"title":        schema.Title,
		"multiplicity": string(schema.Multiplicity),
		"action":       base + "/sections/" + url.PathEscape(schema.Name),
		"submit_label": submitLabel,
		"errors":       options.SectionErrors(schema.Name),
		"fields":       fields,
		"entries":      entries,
	}
}

func fieldID(section, key string) string {
	return "cv-" + section + "-" + key
}

func themeData(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":           cfg.Theme,
		"variant":        cfg.Variant,
		"css_vars_style": render.CSSVarsStyle(cfg.CSSVars),
	}
}

func themeStylesheet(cfg *theme.RendererConfig) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return cfg.AssetURL("stylesheet")
}
