package registry

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed schemas/*.yaml
var embeddedSchemas embed.FS

// Section names registered by Default.
const (
	SectionGeneral    = "general"
	SectionEducation  = "education"
	SectionExperience = "experience"
)

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// EmbeddedFS exposes the bundled schema files so callers can copy or extend
// them.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSchemas, "schemas")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default returns the built-in registry with the general, education and
// experience sections. The result is shared; it is immutable.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = LoadFS(EmbeddedFS())
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultReg
}
