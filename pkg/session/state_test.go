package session_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-cvform/pkg/model"
	"github.com/goliatone/go-cvform/pkg/registry"
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

func TestSectionCell_SubmitResets(t *testing.T) {
	cell := session.NewSectionCell(registry.Default().MustSchema(registry.SectionGeneral))
	if err := cell.Update("name", "Ada"); err != nil {
		t.Fatalf("update: %v", err)
	}
	held := cell.Draft()

	submitted, err := cell.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got, _ := submitted.Get("name"); got != "Ada" {
		t.Fatalf("unexpected submitted name %q", got)
	}
	if cell.Draft().Touched() {
		t.Fatalf("draft must reset after submit")
	}
	if value, _ := held.Get("name"); value.String() != "Ada" {
		t.Fatalf("previously returned draft changed: %q", value.String())
	}
}

func TestSectionCell_UpdateUnknownKeepsDraft(t *testing.T) {
	cell := session.NewSectionCell(registry.Default().MustSchema(registry.SectionGeneral))
	_ = cell.Update("email", "a@b.com")
	before := cell.Draft()

	if err := cell.Update("nonExistentKey", "x"); !errors.Is(err, model.ErrUnknownFieldKey) {
		t.Fatalf("expected unknown key error, got %v", err)
	}
	if !before.Equal(cell.Draft()) {
		t.Fatalf("draft changed after rejected update")
	}
}

func TestState_UpdateAndSubmit(t *testing.T) {
	state := newState(t)

	if err := state.Update(registry.SectionExperience, "companyName", "Acme"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := state.Update(registry.SectionExperience, "positionTitle", ""); err != nil {
		t.Fatalf("update: %v", err)
	}

	entry, err := state.Submit(registry.SectionExperience)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := map[string]string{
		"companyName":      "Acme",
		"positionTitle":    "",
		"responsibilities": "",
		"dateFrom":         "",
		"dateUntil":        "",
	}
	if diff := cmp.Diff(want, entry.Record.Values()); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	draft, err := state.Draft(registry.SectionExperience)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if draft.Touched() {
		t.Fatalf("expected blank draft after submit")
	}
	if state.Collection().Len(registry.SectionExperience) != 1 {
		t.Fatalf("expected one experience entry")
	}
}

func TestState_UnknownSectionAndKey(t *testing.T) {
	state := newState(t)

	if err := state.Update("hobbies", "name", "x"); !errors.Is(err, model.ErrUnknownSection) {
		t.Fatalf("expected unknown section, got %v", err)
	}
	if _, err := state.Submit("hobbies"); !errors.Is(err, model.ErrUnknownSection) {
		t.Fatalf("expected unknown section on submit, got %v", err)
	}
	if err := state.Reset("hobbies"); !errors.Is(err, model.ErrUnknownSection) {
		t.Fatalf("expected unknown section on reset, got %v", err)
	}

	_, _ = state.Submit(registry.SectionGeneral)
	if err := state.Update(registry.SectionGeneral, "nonExistentKey", "x"); !errors.Is(err, model.ErrUnknownFieldKey) {
		t.Fatalf("expected unknown key, got %v", err)
	}
	if got := state.Collection().Len(registry.SectionGeneral); got != 1 {
		t.Fatalf("collection changed after failed update: %d", got)
	}
}

func TestState_UpdateManyIsAtomic(t *testing.T) {
	state := newState(t)

	err := state.UpdateMany(registry.SectionGeneral, map[string]string{
		"name":    "Ada",
		"website": "https://example.com",
	})
	if !errors.Is(err, model.ErrUnknownFieldKey) {
		t.Fatalf("expected unknown key error, got %v", err)
	}
	draft, _ := state.Draft(registry.SectionGeneral)
	if draft.Touched() {
		t.Fatalf("batch must not partially apply")
	}

	if err := state.UpdateMany(registry.SectionGeneral, map[string]string{"name": "Ada", "email": "ada@example.com"}); err != nil {
		t.Fatalf("update many: %v", err)
	}
	draft, _ = state.Draft(registry.SectionGeneral)
	if value, _ := draft.Get("email"); value.String() != "ada@example.com" {
		t.Fatalf("unexpected email %q", value.String())
	}
	if value, _ := draft.Get("phoneNumber"); value.IsSet() {
		t.Fatalf("untouched key must stay unset")
	}
}

func TestState_RequireComplete(t *testing.T) {
	reg := registry.MustNew([]model.SectionSchema{{
		Name: "general",
		Fields: []model.FieldDescriptor{
			{Key: "name", Required: true},
			{Key: "email", Kind: model.InputKindEmail},
		},
	}})
	state, err := session.New(reg, session.WithRequireComplete())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_ = state.Update("general", "email", "a@b.com")

	if _, err := state.Submit("general"); !errors.Is(err, model.ErrIncompleteRecord) {
		t.Fatalf("expected incomplete record, got %v", err)
	}
	draft, _ := state.Draft("general")
	if value, _ := draft.Get("email"); value.String() != "a@b.com" {
		t.Fatalf("draft must be kept after rejected submit")
	}
}

func TestState_ViewAndPanel(t *testing.T) {
	state := newState(t, session.WithToggleContent(toggle.Badge{Children: "CV"}))

	_ = state.Update(registry.SectionGeneral, "name", "Ada")
	_, _ = state.Submit(registry.SectionGeneral)
	_ = state.Update(registry.SectionEducation, "schoolName", "Cambridge")

	view := state.View()
	if !view.Panel.IsOpen() {
		t.Fatalf("panel should start open")
	}
	if view.Toggle.Kind() != toggle.KindBadge {
		t.Fatalf("unexpected toggle kind %s", view.Toggle.Kind())
	}
	if len(view.Sections) != 3 {
		t.Fatalf("expected three sections, got %d", len(view.Sections))
	}
	general, _ := view.Section(registry.SectionGeneral)
	if len(general.Entries) != 1 {
		t.Fatalf("expected general entry in view")
	}
	education, _ := view.Section(registry.SectionEducation)
	if value, _ := education.Draft.Get("schoolName"); value.String() != "Cambridge" {
		t.Fatalf("draft not reflected in view")
	}
	if view.Empty() {
		t.Fatalf("view with entries must not be empty")
	}

	if state.TogglePanel() {
		t.Fatalf("toggle should close the panel")
	}
	if state.View().Panel.IsOpen() {
		t.Fatalf("view should reflect closed panel")
	}
	if view.Panel.State() != "open" {
		t.Fatalf("earlier snapshot must not change")
	}
}

func TestState_WithPanelClosed(t *testing.T) {
	state := newState(t, session.WithPanelClosed())
	if state.View().Panel.IsOpen() {
		t.Fatalf("expected closed panel")
	}
}

func TestState_LogsRejectedUpdates(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	state := newState(t, session.WithLogger(zap.New(core)))

	_ = state.Update(registry.SectionGeneral, "nope", "x")
	_, _ = state.Submit(registry.SectionGeneral)

	if got := logs.FilterMessage("field update rejected").Len(); got != 1 {
		t.Fatalf("expected one rejection log, got %d", got)
	}
	if got := logs.FilterMessage("section submitted").Len(); got != 1 {
		t.Fatalf("expected one submit log, got %d", got)
	}
}

func TestState_SerialisesConcurrentEvents(t *testing.T) {
	state := newState(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = state.Update(registry.SectionEducation, "schoolName", "School")
			_, _ = state.Submit(registry.SectionEducation)
		}()
	}
	wg.Wait()

	if got := state.Collection().Len(registry.SectionEducation); got != 20 {
		t.Fatalf("expected 20 entries, got %d", got)
	}
}

func TestNew_RequiresRegistry(t *testing.T) {
	if _, err := session.New(nil); err == nil {
		t.Fatalf("expected error for nil registry")
	}
}

func TestState_CollectionJSON(t *testing.T) {
	state := newState(t)
	_ = state.Update(registry.SectionGeneral, "name", "Ada")
	if _, err := state.Submit(registry.SectionGeneral); err != nil {
		t.Fatalf("submit: %v", err)
	}

	data, err := state.CollectionJSON()
	if err != nil {
		t.Fatalf("collection json: %v", err)
	}
	want := `{"general":{"email":"","name":"Ada","phoneNumber":""}}`
	if string(data) != want {
		t.Fatalf("unexpected json\nwant %s\n got %s", want, data)
	}
}
