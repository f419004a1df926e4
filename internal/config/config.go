// Package config loads the cvform CLI configuration from YAML or TOML files.
// Flags override file values; unset values fall back to Default().
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cvform/pkg/toggle"
)

// Format is a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for file extensions other than
// .yaml, .yml and .toml.
var ErrUnsupportedFormat = errors.New("config: unsupported format")

// Config is the full CLI configuration.
type Config struct {
	// Schemas is a directory of section schema files. Empty selects the
	// built-in sections.
	Schemas string `yaml:"schemas,omitempty" toml:"schemas,omitempty"`
	// OpenAPI is a document path or URL to derive sections from. Takes
	// precedence over Schemas.
	OpenAPI      string `yaml:"openapi,omitempty" toml:"openapi,omitempty"`
	AllowRemote  bool   `yaml:"allow_remote,omitempty" toml:"allow_remote,omitempty"`
	ValidateSpec bool   `yaml:"validate_openapi,omitempty" toml:"validate_openapi,omitempty"`

	Form   FormConfig   `yaml:"form" toml:"form"`
	Render RenderConfig `yaml:"render" toml:"render"`
	Server ServerConfig `yaml:"server" toml:"server"`
	Theme  ThemeConfig  `yaml:"theme,omitempty" toml:"theme,omitempty"`

	Verbose bool `yaml:"verbose,omitempty" toml:"verbose,omitempty"`
}

// FormConfig holds the initial application state.
type FormConfig struct {
	PanelClosed     bool        `yaml:"panel_closed,omitempty" toml:"panel_closed,omitempty"`
	RequireComplete bool        `yaml:"require_complete,omitempty" toml:"require_complete,omitempty"`
	Toggle          toggle.Spec `yaml:"toggle" toml:"toggle"`
	MaxAttempts     int         `yaml:"max_attempts,omitempty" toml:"max_attempts,omitempty"`
}

type RenderConfig struct {
	// Renderer is "vanilla" or "text". Engine picks the vanilla template
	// engine: "pongo2" (default) or "go-template".
	Renderer     string   `yaml:"renderer" toml:"renderer"`
	Engine       string   `yaml:"engine,omitempty" toml:"engine,omitempty"`
	TextFormat   string   `yaml:"text_format,omitempty" toml:"text_format,omitempty"`
	Title        string   `yaml:"title,omitempty" toml:"title,omitempty"`
	TemplatesDir string   `yaml:"templates_dir,omitempty" toml:"templates_dir,omitempty"`
	Stylesheets  []string `yaml:"stylesheets,omitempty" toml:"stylesheets,omitempty"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr" toml:"addr"`
	BasePath string `yaml:"base_path" toml:"base_path"`
}

// ThemeConfig declares one theme manifest inline.
type ThemeConfig struct {
	Name        string                        `yaml:"name,omitempty" toml:"name,omitempty"`
	Version     string                        `yaml:"version,omitempty" toml:"version,omitempty"`
	Variant     string                        `yaml:"variant,omitempty" toml:"variant,omitempty"`
	Tokens      map[string]string             `yaml:"tokens,omitempty" toml:"tokens,omitempty"`
	Templates   map[string]string             `yaml:"templates,omitempty" toml:"templates,omitempty"`
	AssetPrefix string                        `yaml:"asset_prefix,omitempty" toml:"asset_prefix,omitempty"`
	Assets      map[string]string             `yaml:"assets,omitempty" toml:"assets,omitempty"`
	Variants    map[string]ThemeVariantConfig `yaml:"variants,omitempty" toml:"variants,omitempty"`
}

type ThemeVariantConfig struct {
	Tokens    map[string]string `yaml:"tokens,omitempty" toml:"tokens,omitempty"`
	Templates map[string]string `yaml:"templates,omitempty" toml:"templates,omitempty"`
	Assets    map[string]string `yaml:"assets,omitempty" toml:"assets,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Form: FormConfig{
			Toggle:      toggle.Spec{Kind: string(toggle.KindHamburger)},
			MaxAttempts: 3,
		},
		Render: RenderConfig{
			Renderer:   "vanilla",
			TextFormat: "plain",
			Title:      "CV Builder",
		},
		Server: ServerConfig{
			Addr:     ":8080",
			BasePath: "/",
		},
	}
}

// Load reads path on top of Default(). The format is chosen by extension.
func Load(path string) (Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of Default() and validates the result.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FormatFor maps a file extension to a Format.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Encode writes cfg in the given format. Used by `cvform config init`.
func Encode(cfg Config, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("config: encode yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: encode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return buf.Bytes(), nil
}

// Validate checks enumerations and the toggle variant.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Render.Renderer)) {
	case "vanilla", "text":
	default:
		return fmt.Errorf("config: unknown renderer %q", c.Render.Renderer)
	}
	switch strings.ToLower(strings.TrimSpace(c.Render.Engine)) {
	case "", "pongo2", "go-template":
	default:
		return fmt.Errorf("config: unknown template engine %q", c.Render.Engine)
	}
	switch strings.ToLower(strings.TrimSpace(c.Render.TextFormat)) {
	case "", "plain", "styled", "json":
	default:
		return fmt.Errorf("config: unknown text format %q", c.Render.TextFormat)
	}
	if _, err := toggle.Parse(c.Form.Toggle); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Form.MaxAttempts < 0 {
		return fmt.Errorf("config: max_attempts must not be negative")
	}
	if c.Theme.Name == "" && (len(c.Theme.Tokens) > 0 || len(c.Theme.Variants) > 0) {
		return fmt.Errorf("config: theme tokens require a theme name")
	}
	if c.Theme.Variant != "" {
		if _, ok := c.Theme.Variants[c.Theme.Variant]; !ok {
			return fmt.Errorf("config: theme variant %q is not declared", c.Theme.Variant)
		}
	}
	return nil
}

// Manifest converts the inline theme into a go-theme manifest. It returns
// nil when no theme is configured.
func (t ThemeConfig) Manifest() *theme.Manifest {
	if strings.TrimSpace(t.Name) == "" {
		return nil
	}
	version := t.Version
	if version == "" {
		version = "0.0.0"
	}
	manifest := &theme.Manifest{
		Name:      t.Name,
		Version:   version,
		Tokens:    t.Tokens,
		Templates: t.Templates,
		Assets: theme.Assets{
			Prefix: t.AssetPrefix,
			Files:  t.Assets,
		},
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, variant := range t.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
				Assets:    theme.Assets{Files: variant.Assets},
			}
		}
	}
	return manifest
}
