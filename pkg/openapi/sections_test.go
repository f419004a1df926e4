package openapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvform/pkg/model"
	"github.com/goliatone/go-cvform/pkg/openapi"
	"github.com/goliatone/go-cvform/pkg/registry"
)

const cvDocument = `
openapi: 3.0.3
info:
  title: CV
  version: 1.0.0
paths: {}
components:
  schemas:
    General:
      type: object
      title: General Information
      x-cv-section: true
      x-cv-multiplicity: single
      required: [name]
      properties:
        name:
          type: string
          title: Full name
          example: Jane Doe
          x-cv-order: 1
        email:
          type: string
          format: email
          x-cv-order: 2
        phoneNumber:
          type: string
          x-cv-input: phone
          x-placeholder: +1 555 0100
          x-cv-order: 3
    Job:
      type: array
      title: Practical Experience
      x-cv-section: experience
      items:
        type: object
        properties:
          companyName:
            type: string
          dateFrom:
            type: string
            format: date
          summary:
            type: string
            maxLength: 500
            description: What you did
    Internal:
      type: object
      properties:
        id:
          type: string
`

func TestLoadSections_DerivesDescriptors(t *testing.T) {
	sections, err := openapi.LoadSections(context.Background(), []byte(cvDocument))
	if err != nil {
		t.Fatalf("load sections: %v", err)
	}

	want := []model.SectionSchema{
		{
			Name:         "general",
			Title:        "General Information",
			Multiplicity: model.MultiplicitySingle,
			Fields: []model.FieldDescriptor{
				{Key: "name", Label: "Full name", Placeholder: "Jane Doe", Kind: model.InputKindShortText, Required: true},
				{Key: "email", Kind: model.InputKindEmail},
				{Key: "phoneNumber", Placeholder: "+1 555 0100", Kind: model.InputKindPhone},
			},
		},
		{
			Name:         "experience",
			Title:        "Practical Experience",
			Multiplicity: model.MultiplicityMany,
			Fields: []model.FieldDescriptor{
				{Key: "companyName", Kind: model.InputKindShortText},
				{Key: "dateFrom", Kind: model.InputKindDate},
				{Key: "summary", Placeholder: "What you did", Kind: model.InputKindLongText},
			},
		},
	}
	if diff := cmp.Diff(want, sections); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}

	reg, err := registry.New(sections)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if label := reg.MustSchema("general").Fields[1].Label; label != "Email" {
		t.Fatalf("expected default label, got %q", label)
	}
}

func TestLoadSections_JSONDocument(t *testing.T) {
	doc := `{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{},
	"components":{"schemas":{"Skills":{"type":"object","x-cv-section":"skills",
	"properties":{"skill":{"type":"string","format":"textarea"}}}}}}`

	sections, err := openapi.LoadSections(context.Background(), []byte(doc), openapi.WithValidation())
	if err != nil {
		t.Fatalf("load sections: %v", err)
	}
	if len(sections) != 1 || sections[0].Name != "skills" || sections[0].Fields[0].Kind != model.InputKindLongText {
		t.Fatalf("unexpected sections %+v", sections)
	}
}

func TestLoadSections_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"no sections": strings.Replace(cvDocument, "x-cv-section", "x-other", -1),
		"bad input": `
openapi: 3.0.3
info: {title: x, version: "1"}
paths: {}
components:
  schemas:
    A:
      x-cv-section: a
      properties:
        f: {type: string, x-cv-input: slider}
`,
		"object property": `
openapi: 3.0.3
info: {title: x, version: "1"}
paths: {}
components:
  schemas:
    A:
      x-cv-section: a
      properties:
        f: {type: object}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := openapi.LoadSections(context.Background(), []byte(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_FileSystemAndHTTP(t *testing.T) {
	files := fstest.MapFS{"cv.yaml": {Data: []byte(cvDocument)}}
	sections, err := openapi.Load(context.Background(), "./cv.yaml", openapi.WithFileSystem(files))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(cvDocument))
	}))
	defer server.Close()

	if _, err := openapi.Load(context.Background(), server.URL); err == nil {
		t.Fatalf("expected remote load to require opt-in")
	}
	sections, err = openapi.Load(context.Background(), server.URL, openapi.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	if sections[0].Name != "general" {
		t.Fatalf("unexpected first section %q", sections[0].Name)
	}
}
