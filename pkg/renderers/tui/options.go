package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-cvform/pkg/render"
)

// DefaultMaxAttempts bounds how often a field is re-asked after failing its
// kind check before the answer is accepted anyway.
const DefaultMaxAttempts = 3

// Theme captures message prefixes the session applies when printing.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithPreviewRenderer sets the renderer used by the "Preview" menu entry.
func WithPreviewRenderer(renderer render.Renderer) Option {
	return func(s *Session) {
		if renderer != nil {
			s.preview = renderer
		}
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
