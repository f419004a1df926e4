package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-cvform/pkg/render"
	rendertemplate "github.com/goliatone/go-cvform/pkg/render/template"
	gotemplate "github.com/goliatone/go-cvform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-cvform/pkg/session"
)

// Name identifies the renderer in render.Registry.
const Name = "vanilla"

const pageTemplate = "page"

// Template engines accepted by WithEngine.
const (
	EnginePongo2     = "pongo2"
	EngineGoTemplate = "go-template"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	engine           string
	title            string
	inlineStyles     bool
	stylesheets      []string
}

// WithTemplatesFS supplies an alternate template bundle. It must contain a
// page.tmpl at its root.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithEngine selects the template engine used when no renderer is injected.
func WithEngine(name string) Option {
	return func(cfg *config) {
		cfg.engine = strings.ToLower(strings.TrimSpace(name))
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title = strings.TrimSpace(title); title != "" {
			cfg.title = title
		}
	}
}

// WithStylesheet links an external stylesheet after the inline defaults.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithoutDefaultStyles drops the inline bundled stylesheet.
func WithoutDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = false
	}
}

// Renderer produces a complete HTML page: an aside with the panel toggle and
// one form per section, and a main preview listing submitted entries.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	title       string
	stylesheet  string
	stylesheets []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		title:        "CV Builder",
		inlineStyles: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := newEngine(cfg.engine, cfg.templateFS)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	renderer := &Renderer{
		templates:   templates,
		title:       cfg.title,
		stylesheets: append([]string(nil), cfg.stylesheets...),
	}
	if cfg.inlineStyles {
		renderer.stylesheet = defaultStylesheet()
	}
	return renderer, nil
}

func newEngine(name string, files fs.FS) (rendertemplate.TemplateRenderer, error) {
	opts := []gotemplate.Option{
		gotemplate.WithFS(files),
		gotemplate.WithExtension(".tmpl"),
	}
	switch name {
	case "", EnginePongo2:
		return gotemplate.New(opts...)
	case EngineGoTemplate:
		return gotemplate.NewLibrary(opts...)
	default:
		return nil, fmt.Errorf("unknown template engine %q", name)
	}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the page template, or the theme's cv.page partial when the
// selected theme provides one.
func (r *Renderer) Render(_ context.Context, view session.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	name := pageTemplate
	if options.Theme != nil {
		if partial := strings.TrimSpace(options.Theme.Partials[render.PartialPage]); partial != "" {
			name = partial
		}
	}

	result, err := r.templates.RenderTemplate(name, r.pageData(view, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
