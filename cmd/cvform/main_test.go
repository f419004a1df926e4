package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-cvform/internal/config"
	"github.com/goliatone/go-cvform/pkg/model"
	"github.com/goliatone/go-cvform/pkg/renderers/tui"
)

// newTestCmd returns a command writing to a buffer, with the package globals
// reset to defaults.
func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.Default()
	t.Cleanup(func() {
		cfg = config.Default()
		renderSets, renderSubmits = nil, nil
		renderOutput, fillOutput = "", ""
		sectionsJSON = false
	})

	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd, out
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cvform.toml")
	data := "schemas = \"from-file\"\nverbose = true\n\n[render]\nrenderer = \"text\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	configPath = path
	defer func() { configPath, schemasDir = "", "" }()

	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&schemasDir, "schemas", "", "")
	if err := cmd.Flags().Set("schemas", "from-flag"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	got, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Schemas != "from-flag" {
		t.Fatalf("flag must override file, got %q", got.Schemas)
	}
	if !got.Verbose || got.Render.Renderer != "text" {
		t.Fatalf("file values not applied: %+v", got)
	}
}

func TestRunSections(t *testing.T) {
	cmd, out := newTestCmd(t)
	if err := runSections(cmd, nil); err != nil {
		t.Fatalf("sections: %v", err)
	}
	listing := out.String()
	for _, want := range []string{"general", "single", "Educational Experience", "phoneNumber", "long-text"} {
		if !strings.Contains(listing, want) {
			t.Fatalf("listing missing %q:\n%s", want, listing)
		}
	}

	out.Reset()
	sectionsJSON = true
	if err := runSections(cmd, nil); err != nil {
		t.Fatalf("sections --json: %v", err)
	}
	var schemas []model.SectionSchema
	if err := json.Unmarshal(out.Bytes(), &schemas); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(schemas) != 3 || schemas[0].Name != "general" {
		t.Fatalf("unexpected schemas %+v", schemas)
	}
}

func TestRunRender_TextWithSetsAndSubmit(t *testing.T) {
	cmd, out := newTestCmd(t)
	cfg.Render.Renderer = "text"
	renderSets = []string{"general.name=Ada", "education.schoolName=State University"}
	renderSubmits = []string{"general"}

	if err := runRender(cmd, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	listing := out.String()
	if !strings.Contains(listing, "Ada") {
		t.Fatalf("submitted general record missing:\n%s", listing)
	}
	if !strings.Contains(listing, "draft:") || !strings.Contains(listing, "State University") {
		t.Fatalf("education draft missing:\n%s", listing)
	}
}

func TestRunRender_HTMLToFile(t *testing.T) {
	cmd, out := newTestCmd(t)
	renderOutput = filepath.Join(t.TempDir(), "cv.html")

	if err := runRender(cmd, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), "CV written to") {
		t.Fatalf("expected confirmation, got %q", out.String())
	}
	data, err := os.ReadFile(renderOutput)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "<title>CV Builder</title>") {
		t.Fatalf("expected html page")
	}
}

func TestRunRender_GoTemplateEngine(t *testing.T) {
	cmd, out := newTestCmd(t)
	cfg.Render.Engine = "go-template"
	renderSets = []string{"general.name=Ada"}

	if err := runRender(cmd, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	page := out.String()
	if !strings.Contains(page, "<title>CV Builder</title>") || !strings.Contains(page, `value="Ada"`) {
		t.Fatalf("expected html page with draft value:\n%s", page)
	}
}

func TestRunRender_Errors(t *testing.T) {
	cases := map[string]func(){
		"malformed set":   func() { renderSets = []string{"general-name=Ada"} },
		"unknown section": func() { renderSets = []string{"hobbies.name=chess"} },
		"unknown key":     func() { renderSets = []string{"general.salary=1"} },
		"unknown submit":  func() { renderSubmits = []string{"hobbies"} },
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			cmd, _ := newTestCmd(t)
			setup()
			if err := runRender(cmd, nil); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseSets(t *testing.T) {
	got, err := parseSets([]string{"general.name=Ada", "general.name=Grace", "general.email=a=b@example.com"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got["general"]["name"] != "Grace" || got["general"]["email"] != "a=b@example.com" {
		t.Fatalf("unexpected sets %v", got)
	}
}

type scriptedDriver struct {
	selects  []int
	inputs   []string
	confirms []bool
	infos    []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	answer := ""
	if len(d.inputs) > 0 {
		answer, d.inputs = d.inputs[0], d.inputs[1:]
	}
	return answer, nil
}

func (d *scriptedDriver) TextArea(ctx context.Context, cfg tui.TextAreaConfig) (string, error) {
	return d.Input(ctx, tui.InputConfig{Message: cfg.Message})
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, nil
	}
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, tui.ErrAborted
	}
	choice := d.selects[0]
	d.selects = d.selects[1:]
	return choice, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestRunFill_SubmitsAndRenders(t *testing.T) {
	cmd, out := newTestCmd(t)
	cfg.Render.Renderer = "text"

	driver := &scriptedDriver{
		// general, then Done (3 sections + Preview + Done).
		selects:  []int{0, 4},
		inputs:   []string{"Ada", "ada@example.com", "+1 555 0100"},
		confirms: []bool{true},
	}
	previous := newPromptDriver
	newPromptDriver = func(_ io.Writer) tui.PromptDriver { return driver }
	defer func() { newPromptDriver = previous }()

	if err := runFill(cmd, nil); err != nil {
		t.Fatalf("fill: %v", err)
	}
	listing := out.String()
	if !strings.Contains(listing, "ada@example.com") {
		t.Fatalf("rendered CV missing general record:\n%s", listing)
	}
	if len(driver.infos) == 0 || !strings.Contains(driver.infos[0], "General Information saved") {
		t.Fatalf("expected save notice, got %v", driver.infos)
	}
}

func TestRunConfigInit(t *testing.T) {
	cmd, out := newTestCmd(t)
	configFormat = "toml"
	defer func() { configFormat = "yaml" }()

	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("config init: %v", err)
	}
	parsed, err := config.Parse(out.Bytes(), config.FormatTOML)
	if err != nil {
		t.Fatalf("parse generated config: %v\n%s", err, out.String())
	}
	if parsed.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", parsed.Server.Addr)
	}
}

func TestServerHandler(t *testing.T) {
	cmd, _ := newTestCmd(t)
	cfg.Server.BasePath = "/cv"
	cfg.Theme = config.ThemeConfig{Name: "paper", Tokens: map[string]string{"brand": "#333"}}

	state, err := buildState(cmd.Context(), cfg, logger)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	handler, err := newServerHandler(state, cfg, logger)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cv/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("page: expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "--brand: #333;") {
		t.Fatalf("theme tokens not applied")
	}
	if !strings.Contains(body, `action="/cv/sections/general"`) {
		t.Fatalf("forms must post under the base path")
	}
}
