package registry

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cvform/pkg/model"
)

type documentFile struct {
	Sections []model.SectionSchema `json:"sections" yaml:"sections"`
}

// LoadFS walks fsys in lexical order and registers every section found in
// JSON or YAML schema files.
func LoadFS(fsys fs.FS, options ...Option) (*Registry, error) {
	if fsys == nil {
		return nil, fmt.Errorf("registry: filesystem is nil")
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("registry: walk schemas: %w", err)
	}
	sort.Strings(paths)

	var schemas []model.SectionSchema
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("registry: read %s: %w", path, err)
		}
		doc, err := ParseDocument(data, path)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, doc...)
	}
	return New(schemas, options...)
}

// ParseDocument decodes one schema file. JSON is attempted first, then YAML.
func ParseDocument(data []byte, source string) ([]model.SectionSchema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("registry: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc.Sections, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("registry: parse %s: %w", source, err)
	}
	return doc.Sections, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
