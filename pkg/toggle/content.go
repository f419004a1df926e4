package toggle

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind names a Content variant.
type Kind string

const (
	KindHamburger Kind = "hamburger"
	KindIcon      Kind = "icon"
	KindAvatar    Kind = "avatar"
	KindBadge     Kind = "badge"
)

// Content is the visual content of the toggle control. It is sealed: only the
// variants declared in this package implement it.
type Content interface {
	Kind() Kind
	sealed()
}

// Hamburger renders the three-bar menu glyph.
type Hamburger struct{}

// Icon renders an image loaded from URL.
type Icon struct {
	URL string
	Alt string
}

// Avatar renders child markup inside a rounded frame.
type Avatar struct {
	Children string
}

// Badge renders child markup inside a pill.
type Badge struct {
	Children string
}

func (Hamburger) Kind() Kind { return KindHamburger }
func (Icon) Kind() Kind      { return KindIcon }
func (Avatar) Kind() Kind    { return KindAvatar }
func (Badge) Kind() Kind     { return KindBadge }

func (Hamburger) sealed() {}
func (Icon) sealed()      {}
func (Avatar) sealed()    {}
func (Badge) sealed()     {}

// Spec is the configuration form of a Content value.
type Spec struct {
	Kind     string `json:"kind" yaml:"kind" toml:"kind"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty" toml:"url"`
	Alt      string `json:"alt,omitempty" yaml:"alt,omitempty" toml:"alt"`
	Children string `json:"children,omitempty" yaml:"children,omitempty" toml:"children"`
}

// Parse builds the variant described by spec. An empty kind yields
// Hamburger.
func Parse(spec Spec) (Content, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(spec.Kind))) {
	case "", KindHamburger:
		return Hamburger{}, nil
	case KindIcon:
		if err := checkIconURL(spec.URL); err != nil {
			return nil, err
		}
		return Icon{URL: strings.TrimSpace(spec.URL), Alt: spec.Alt}, nil
	case KindAvatar:
		return Avatar{Children: spec.Children}, nil
	case KindBadge:
		return Badge{Children: spec.Children}, nil
	default:
		return nil, fmt.Errorf("toggle: unknown content kind %q", spec.Kind)
	}
}

func checkIconURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("toggle: icon requires a url")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("toggle: icon url: %w", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "", "http", "https":
		return nil
	default:
		return fmt.Errorf("toggle: icon url scheme %q not allowed", parsed.Scheme)
	}
}
