package gotemplate_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-cvform/pkg/render/template"
	"github.com/goliatone/go-cvform/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tmpl": {Data: []byte("{{ name|cvshout }}")},
		"initials.tmpl":   {Data: []byte("{{ name|initials }}")},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWritesToOutputs(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!" {
		t.Fatalf("unexpected result %q", result)
	}
	if buf.String() != result {
		t.Fatalf("writer got %q, want %q", buf.String(), result)
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	data := struct {
		Name string `json:"name"`
	}{Name: "Grace"}
	result, err := engine.RenderTemplate("hello.tmpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Grace!" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("cvshout", func(input any, _ any) (any, error) {
		return strings.ToUpper(fmt.Sprint(input)) + "!", nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("cvshout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngine_InitialsFilter(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("initials", map[string]any{"name": "ada king lovelace"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "AK" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngine_InitialsFilterCountsRunes(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("initials", map[string]any{"name": "Élodie Martin"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ÉM" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngine_RenderDetectsInlineContent(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "two"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "1-two" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}

func TestNewLibrary_RendersWithGoTemplate(t *testing.T) {
	files := fstest.MapFS{
		"card.tmpl": {Data: []byte("{{ name|initials }} {{ name }} ({{ settings.env }})")},
	}
	engine, err := gotemplate.NewLibrary(
		gotemplate.WithFS(files),
		gotemplate.WithGoTemplateOptions(gotemplatepkg.WithGlobalData(map[string]any{
			"settings": map[string]any{"env": "staging"},
		})),
	)
	if err != nil {
		t.Fatalf("new library engine: %v", err)
	}

	var renderer template.TemplateRenderer = engine
	data := struct {
		Name string `json:"name"`
	}{Name: "Ada Lovelace"}
	result, err := renderer.RenderTemplate("card", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "AL Ada Lovelace (staging)" {
		t.Fatalf("unexpected result %q", result)
	}

	inline, err := renderer.Render("{{ a }}-{{ b }}", map[string]any{"a": "one", "b": "two"})
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	if inline != "one-two" {
		t.Fatalf("unexpected inline result %q", inline)
	}
}

func TestNewLibrary_RequiresSource(t *testing.T) {
	if _, err := gotemplate.NewLibrary(); err == nil {
		t.Fatalf("expected error without template source")
	}
}
