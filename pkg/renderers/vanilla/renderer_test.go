package vanilla_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cvform/pkg/registry"
	"github.com/goliatone/go-cvform/pkg/render"
	"github.com/goliatone/go-cvform/pkg/renderers/vanilla"
	"github.com/goliatone/go-cvform/pkg/session"
	"github.com/goliatone/go-cvform/pkg/toggle"
)

func newState(t *testing.T, options ...session.Option) *session.State {
	t.Helper()
	state, err := session.New(registry.Default(), options...)
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	return state
}

func renderView(t *testing.T, renderer *vanilla.Renderer, view session.View, opts render.RenderOptions) string {
	t.Helper()
	out, err := renderer.Render(context.Background(), view, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, output)
		}
	}
}

func TestRenderer_FormsReflectDraft(t *testing.T) {
	state := newState(t)
	if err := state.Update(registry.SectionGeneral, "name", "Ada Lovelace"); err != nil {
		t.Fatalf("update: %v", err)
	}

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output := renderView(t, renderer, state.View(), render.RenderOptions{})

	assertContains(t, output,
		`<aside class="cv-panel cv-panel--open"`,
		`action="/sections/general"`,
		`action="/sections/education"`,
		`action="/sections/experience"`,
		`name="name" type="text" value="Ada Lovelace"`,
		`name="email" type="email" value=""`,
		`name="phoneNumber" type="tel" value=""`,
		`name="dateOfStudy" type="date" value=""`,
		`<textarea id="cv-experience-responsibilities" name="responsibilities"`,
		`action="/panel/toggle"`,
		`class="cv-toggle__hamburger"`,
		`Nothing submitted yet.`,
	)
}

func TestRenderer_PreviewListsEntries(t *testing.T) {
	state := newState(t)
	_ = state.Update(registry.SectionExperience, "companyName", "Analytical Engines")
	_ = state.Update(registry.SectionExperience, "responsibilities", "notes\nprograms")
	entry, err := state.Submit(registry.SectionExperience)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	renderer, err := vanilla.New(vanilla.WithTitle("My CV"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output := renderView(t, renderer, state.View(), render.RenderOptions{})

	assertContains(t, output,
		`<title>My CV</title>`,
		`data-entry="`+entry.ID+`"`,
		`<dd>Analytical Engines</dd>`,
		`<dd>notes<br>programs</dd>`,
		`Add entry`,
	)
	if strings.Contains(output, `value="Analytical Engines"`) {
		t.Fatalf("draft should be reset after submit")
	}
}

func TestRenderer_EscapesUserInput(t *testing.T) {
	state := newState(t)
	_ = state.Update(registry.SectionGeneral, "name", `<script>alert("x")</script>`)
	if _, err := state.Submit(registry.SectionGeneral); err != nil {
		t.Fatalf("submit: %v", err)
	}

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output := renderView(t, renderer, state.View(), render.RenderOptions{})

	if strings.Contains(output, "<script>") {
		t.Fatalf("user input rendered unescaped:\n%s", output)
	}
	assertContains(t, output, "&lt;script&gt;")
}

func TestRenderer_ClosedPanelHidesForms(t *testing.T) {
	state := newState(t, session.WithPanelClosed(), session.WithToggleContent(toggle.Badge{Children: "3"}))

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output := renderView(t, renderer, state.View(), render.RenderOptions{})

	assertContains(t, output,
		`cv-panel--closed`,
		`aria-expanded="false"`,
		`data-toggle-kind="badge"`,
		`<span class="cv-toggle__badge">3</span>`,
	)
	if strings.Contains(output, `action="/sections/general"`) {
		t.Fatalf("closed panel must not render section forms")
	}
}

func TestRenderer_ErrorsAndNotice(t *testing.T) {
	state := newState(t)
	_ = state.Update(registry.SectionGeneral, "email", "nope")

	renderer, err := vanilla.New(vanilla.WithoutDefaultStyles())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	view := state.View()
	output := renderView(t, renderer, view, render.RenderOptions{
		Errors: render.MergeErrors(render.DraftErrors(view), map[string][]string{
			registry.SectionEducation: {"education is closed"},
		}),
		Notice: "Saved",
		Action: "/cv/",
	})

	assertContains(t, output,
		`cv-field cv-field--invalid`,
		`<p class="cv-field__error">not a valid email address</p>`,
		`<p class="cv-error" role="alert">education is closed</p>`,
		`<p class="cv-notice" role="status">Saved</p>`,
		`action="/cv/sections/general"`,
		`action="/cv/panel/toggle"`,
	)
	if strings.Contains(output, "<style>") {
		t.Fatalf("default styles should be omitted")
	}
}

func TestRenderer_ThemeTokensAndPartial(t *testing.T) {
	state := newState(t)
	cfg := &theme.RendererConfig{
		Theme:   "paper",
		Variant: "dark",
		Tokens:  map[string]string{"accent": "#123456"},
		CSSVars: map[string]string{"--accent": "#123456"},
		AssetURL: func(key string) string {
			if key == "stylesheet" {
				return "/themes/paper/paper.css"
			}
			return ""
		},
	}

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output := renderView(t, renderer, state.View(), render.RenderOptions{Theme: cfg})
	assertContains(t, output,
		`data-theme="paper"`,
		`data-theme-variant="dark"`,
		"--accent: #123456;",
		`<link rel="stylesheet" href="/themes/paper/paper.css">`,
	)

	custom, err := vanilla.New(vanilla.WithTemplatesFS(fstest.MapFS{
		"themes/paper.tmpl": {Data: []byte(`{{ theme.name }}:{% for s in sections %}{{ s.name }};{% endfor %}`)},
	}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	cfg.Partials = map[string]string{render.PartialPage: "themes/paper.tmpl"}
	output = renderView(t, custom, state.View(), render.RenderOptions{Theme: cfg})
	if output != "paper:general;education;experience;" {
		t.Fatalf("unexpected partial output %q", output)
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

func TestRenderer_GoTemplateEngine(t *testing.T) {
	state := newState(t)
	if err := state.Update(registry.SectionGeneral, "name", "Ada <Lovelace>"); err != nil {
		t.Fatalf("update: %v", err)
	}

	renderer, err := vanilla.New(vanilla.WithEngine(vanilla.EngineGoTemplate), vanilla.WithTitle("My CV"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output := renderView(t, renderer, state.View(), render.RenderOptions{})

	assertContains(t, output,
		`<title>My CV</title>`,
		`action="/sections/general"`,
		`value="Ada &lt;Lovelace&gt;"`,
		`class="cv-toggle__hamburger"`,
	)
}

func TestRenderer_UnknownEngine(t *testing.T) {
	if _, err := vanilla.New(vanilla.WithEngine("mustache")); err == nil {
		t.Fatalf("expected error for unknown template engine")
	}
}
