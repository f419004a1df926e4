package cv_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvform/pkg/cv"
	"github.com/goliatone/go-cvform/pkg/draft"
	"github.com/goliatone/go-cvform/pkg/model"
	"github.com/goliatone/go-cvform/pkg/registry"
)

func sequentialIDs() cv.Option {
	n := 0
	return cv.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("entry-%d", n)
	})
}

func submit(t *testing.T, schema model.SectionSchema, values map[string]string) draft.SubmittedRecord {
	t.Helper()
	record := draft.DeriveBlankRecord(schema)
	for key, value := range values {
		var err error
		record, err = draft.ApplyFieldUpdate(record, key, value)
		if err != nil {
			t.Fatalf("update %s: %v", key, err)
		}
	}
	submitted, err := draft.ToSubmittedRecord(record)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return submitted
}

func TestCollection_FailedUpdateLeavesEntriesIntact(t *testing.T) {
	schema := model.SectionSchema{
		Name:         "experience",
		Multiplicity: model.MultiplicityMany,
		Fields: []model.FieldDescriptor{
			{Key: "name"}, {Key: "email"}, {Key: "phoneNumber"},
		},
	}
	collection := cv.New(sequentialIDs())

	record := draft.DeriveBlankRecord(schema)
	record, err := draft.ApplyFieldUpdate(record, "email", "a@b.com")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	submitted, err := draft.ToSubmittedRecord(record)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := collection.Add(schema, submitted); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := collection.Len("experience"); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}

	if _, err := draft.ApplyFieldUpdate(record, "nonExistentKey", "x"); !errors.Is(err, model.ErrUnknownFieldKey) {
		t.Fatalf("expected unknown key error, got %v", err)
	}
	if got := collection.Len("experience"); got != 1 {
		t.Fatalf("collection changed after failed update: %d", got)
	}
}

func TestCollection_SingleReplaces(t *testing.T) {
	reg := registry.Default()
	general := reg.MustSchema(registry.SectionGeneral)
	collection := cv.New(sequentialIDs())

	if _, err := collection.Add(general, submit(t, general, map[string]string{"name": "Ada"})); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := collection.Add(general, submit(t, general, map[string]string{"name": "Grace"})); err != nil {
		t.Fatalf("add: %v", err)
	}

	entry, ok := collection.General()
	if !ok {
		t.Fatalf("expected general record")
	}
	if got, _ := entry.Record.Get("name"); got != "Grace" {
		t.Fatalf("expected replacement, got %q", got)
	}
	if entry.ID != "entry-2" {
		t.Fatalf("unexpected entry id %q", entry.ID)
	}
	if collection.Len(registry.SectionGeneral) != 1 {
		t.Fatalf("single section must hold one record")
	}
}

func TestCollection_ManyAppendsInOrder(t *testing.T) {
	education := registry.Default().MustSchema(registry.SectionEducation)
	collection := cv.New(sequentialIDs())

	for _, school := range []string{"First", "Second", "Third"} {
		if _, err := collection.Add(education, submit(t, education, map[string]string{"schoolName": school})); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	var got []string
	for _, entry := range collection.Entries(registry.SectionEducation) {
		name, _ := entry.Record.Get("schoolName")
		got = append(got, entry.ID+":"+name)
	}
	want := []string{"entry-1:First", "entry-2:Second", "entry-3:Third"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestCollection_RejectsForeignRecords(t *testing.T) {
	reg := registry.Default()
	general := reg.MustSchema(registry.SectionGeneral)
	education := reg.MustSchema(registry.SectionEducation)
	collection := cv.New()

	if _, err := collection.Add(education, submit(t, general, nil)); err == nil {
		t.Fatalf("expected section mismatch error")
	}

	widened := general
	widened.Fields = append(widened.Fields, model.FieldDescriptor{Key: "website"})
	if _, err := collection.Add(widened, submit(t, general, nil)); err == nil {
		t.Fatalf("expected key set mismatch error")
	}
	if collection.Len(registry.SectionGeneral) != 0 || collection.Len(registry.SectionEducation) != 0 {
		t.Fatalf("collection must be unchanged after rejected adds")
	}
}

func TestCollection_MarshalJSON(t *testing.T) {
	reg := registry.Default()
	general := reg.MustSchema(registry.SectionGeneral)
	education := reg.MustSchema(registry.SectionEducation)
	collection := cv.New(sequentialIDs())

	_, _ = collection.Add(general, submit(t, general, map[string]string{"name": "Ada", "email": "ada@example.com"}))
	_, _ = collection.Add(education, submit(t, education, map[string]string{"schoolName": "Cambridge"}))

	raw, err := json.Marshal(collection)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{
		"general": map[string]any{"name": "Ada", "email": "ada@example.com", "phoneNumber": ""},
		"education": []any{
			map[string]any{"schoolName": "Cambridge", "titleOfStudy": "", "dateOfStudy": ""},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}
