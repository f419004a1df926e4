package text

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-cvform/pkg/draft"
	"github.com/goliatone/go-cvform/pkg/render"
	"github.com/goliatone/go-cvform/pkg/session"
	"github.com/goliatone/go-cvform/pkg/toggle"
)

// Name is the registry key of the text renderer.
const Name = "text"

// Format selects the output flavour.
type Format string

const (
	FormatPlain  Format = "plain"
	FormatStyled Format = "styled"
	FormatJSON   Format = "json"
)

// ParseFormat resolves a CLI flag value. Empty means plain.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatPlain:
		return FormatPlain, nil
	case FormatStyled:
		return FormatStyled, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("text renderer: unknown format %q", raw)
	}
}

// Styles holds the lipgloss styles used by FormatStyled.
type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the palette used when none is configured.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2f5d8a")),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Value:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6b7280")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
	}
}

type Option func(*Renderer)

// WithFormat overrides the default plain format.
func WithFormat(format Format) Option {
	return func(r *Renderer) {
		r.format = format
	}
}

// WithStyles replaces DefaultStyles.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithDrafts includes non-empty drafts below the submitted entries.
func WithDrafts() Option {
	return func(r *Renderer) {
		r.drafts = true
	}
}

// Renderer implements render.Renderer for terminal output.
type Renderer struct {
	format Format
	styles Styles
	drafts bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a text renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{format: FormatPlain, styles: DefaultStyles()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	if r.format == FormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, view session.View, options render.RenderOptions) ([]byte, error) {
	switch r.format {
	case FormatJSON:
		return renderJSON(view, options)
	case FormatStyled:
		return []byte(r.renderListing(view, options, true)), nil
	case FormatPlain, "":
		return []byte(r.renderListing(view, options, false)), nil
	default:
		return nil, fmt.Errorf("text renderer: unknown format %q", r.format)
	}
}

type paintFunc func(style lipgloss.Style, s string) string

func (r *Renderer) renderListing(view session.View, options render.RenderOptions, styled bool) string {
	var b strings.Builder
	styles := r.styles
	paint := func(style lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return style.Render(s)
	}

	label := "Menu"
	if view.Toggle != nil {
		label = toggle.Label(view.Toggle)
	}
	b.WriteString(paint(styles.Title, "Curriculum Vitae"))
	b.WriteString(paint(styles.Muted, fmt.Sprintf(" [%s, panel %s]", label, view.Panel.State())))
	b.WriteString("\n")
	if notice := strings.TrimSpace(options.Notice); notice != "" {
		b.WriteString(notice)
		b.WriteString("\n")
	}

	for _, section := range view.Sections {
		schema := section.Schema
		b.WriteString("\n")
		b.WriteString(paint(styles.Section, schema.Title))
		b.WriteString("\n")
		for _, message := range options.SectionErrors(schema.Name) {
			b.WriteString("  ")
			b.WriteString(paint(styles.Error, "! "+message))
			b.WriteString("\n")
		}

		if len(section.Entries) == 0 {
			b.WriteString("  ")
			b.WriteString(paint(styles.Muted, "(nothing submitted)"))
			b.WriteString("\n")
		}
		for i, entry := range section.Entries {
			indent := "  "
			if schema.Repeatable() {
				fmt.Fprintf(&b, "  %s\n", paint(styles.Muted, fmt.Sprintf("#%d", i+1)))
				indent = "    "
			}
			for _, field := range schema.Fields {
				value, _ := entry.Record.Get(field.Key)
				writeField(&b, indent, field.Label, value, styles, paint)
			}
		}

		if r.drafts && section.Draft.Touched() {
			b.WriteString("  ")
			b.WriteString(paint(styles.Muted, "draft:"))
			b.WriteString("\n")
			for _, field := range schema.Fields {
				value, _ := section.Draft.Get(field.Key)
				if !value.IsSet() {
					continue
				}
				writeField(&b, "    ", field.Label, value.String(), styles, paint)
				for _, message := range options.FieldErrors(schema.Name, field.Key) {
					b.WriteString("      ")
					b.WriteString(paint(styles.Error, "! "+message))
					b.WriteString("\n")
				}
			}
		}
	}
	return b.String()
}

func writeField(b *strings.Builder, indent, label, value string, styles Styles, paint paintFunc) {
	lines := strings.Split(value, "\n")
	b.WriteString(indent)
	b.WriteString(paint(styles.Label, label+":"))
	b.WriteString(" ")
	b.WriteString(paint(styles.Value, lines[0]))
	b.WriteString("\n")
	pad := strings.Repeat(" ", len(indent)+len(label)+2)
	for _, line := range lines[1:] {
		b.WriteString(pad)
		b.WriteString(paint(styles.Value, line))
		b.WriteString("\n")
	}
}

type jsonView struct {
	Panel    string              `json:"panel"`
	Toggle   string              `json:"toggle"`
	Sections []jsonSection       `json:"sections"`
	Errors   map[string][]string `json:"errors,omitempty"`
}

type jsonSection struct {
	Name         string            `json:"name"`
	Title        string            `json:"title"`
	Multiplicity string            `json:"multiplicity"`
	Draft        draft.DraftRecord `json:"draft"`
	Entries      []jsonEntry       `json:"entries"`
}

type jsonEntry struct {
	ID     string                `json:"id"`
	Record draft.SubmittedRecord `json:"record"`
}

func renderJSON(view session.View, options render.RenderOptions) ([]byte, error) {
	payload := jsonView{
		Panel:    view.Panel.State(),
		Sections: make([]jsonSection, 0, len(view.Sections)),
		Errors:   options.Errors,
	}
	if view.Toggle != nil {
		payload.Toggle = string(view.Toggle.Kind())
	}
	for _, section := range view.Sections {
		entries := make([]jsonEntry, 0, len(section.Entries))
		for _, entry := range section.Entries {
			entries = append(entries, jsonEntry{ID: entry.ID, Record: entry.Record})
		}
		payload.Sections = append(payload.Sections, jsonSection{
			Name:         section.Schema.Name,
			Title:        section.Schema.Title,
			Multiplicity: string(section.Schema.Multiplicity),
			Draft:        section.Draft,
			Entries:      entries,
		})
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("text renderer: encode json: %w", err)
	}
	return append(data, '\n'), nil
}
