package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Partial keys renderers look up in theme.RendererConfig.Partials.
const (
	PartialPage = "cv.page"
)

// ThemeSelector resolves a theme/variant pair. go-theme selectors and
// ManifestSelector both satisfy it.
type ThemeSelector interface {
	Select(name, variant string, options ...theme.QueryOption) (*theme.Selection, error)
}

// ResolveTheme asks selector for a theme/variant pair and flattens the result
// into a renderer configuration. A nil selector yields a nil config.
func ResolveTheme(selector ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	return ThemeConfig(selection, fallbacks), nil
}

// ThemeConfig merges a selection's manifest with its variant overrides.
// Tokens become CSS custom properties ("brand" -> "--brand"). Partials start
// from fallbacks, then the manifest templates, then the variant templates.
func ThemeConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: mergeStrings(fallbacks),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	manifest := selection.Manifest
	if manifest == nil {
		cfg.AssetURL = func(string) string { return "" }
		return cfg
	}
	if cfg.Theme == "" {
		cfg.Theme = manifest.Name
	}

	variant, hasVariant := manifest.Variants[selection.Variant]
	cfg.Tokens = mergeStrings(manifest.Tokens)
	cfg.Partials = mergeStrings(cfg.Partials, manifest.Templates)
	if hasVariant {
		cfg.Tokens = mergeStrings(cfg.Tokens, variant.Tokens)
		cfg.Partials = mergeStrings(cfg.Partials, variant.Templates)
	}
	for key, value := range cfg.Tokens {
		cfg.CSSVars[CSSVarName(key)] = value
	}

	prefix := manifest.Assets.Prefix
	files := mergeStrings(manifest.Assets.Files)
	if hasVariant {
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		files = mergeStrings(files, variant.Assets.Files)
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return cfg
}

// CSSVarName converts a token key to a custom property name.
func CSSVarName(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "--") {
		return token
	}
	return "--" + strings.ReplaceAll(token, ".", "-")
}

// CSSVarsStyle renders vars as a :root rule with sorted declarations.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// ManifestSelector serves selections from an in-memory set of manifests,
// typically the ones declared in the CLI config file.
type ManifestSelector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector validates each manifest through a go-theme registry and
// keeps them for lookup. defaultTheme must name one of them.
func NewManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*ManifestSelector, error) {
	registry := theme.NewRegistry()
	selector := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
		}
		selector.manifests[manifest.Name] = manifest
	}
	if selector.defaultTheme == "" && len(manifests) == 1 && manifests[0] != nil {
		selector.defaultTheme = manifests[0].Name
	}
	if _, ok := selector.manifests[selector.defaultTheme]; !ok {
		return nil, fmt.Errorf("render: default theme %q not registered", selector.defaultTheme)
	}
	return selector, nil
}

// Select implements ThemeSelector. Empty arguments fall back to the
// defaults; an unknown variant is an error.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theme %q not found", name)
	}
	variant = strings.TrimSpace(variant)
	if variant == "" && name == s.defaultTheme {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

func mergeStrings(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for key, value := range m {
			out[key] = value
		}
	}
	return out
}
