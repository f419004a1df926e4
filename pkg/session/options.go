package session

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-cvform/pkg/cv"
	"github.com/goliatone/go-cvform/pkg/toggle"
)

// Option configures a State.
type Option func(*State)

// WithLogger routes event logging to logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithToggleContent selects the toggle control variant.
func WithToggleContent(content toggle.Content) Option {
	return func(s *State) {
		if content != nil {
			s.toggle = content
		}
	}
}

// WithPanelClosed starts the panel closed.
func WithPanelClosed() Option {
	return func(s *State) {
		s.panel.Close()
	}
}

// WithCollection seeds the state with an existing collection.
func WithCollection(collection *cv.Collection) Option {
	return func(s *State) {
		if collection != nil {
			s.collection = collection
		}
	}
}

// WithRequireComplete enables the completeness policy on submit, so
// descriptors flagged Required must be filled.
func WithRequireComplete() Option {
	return func(s *State) {
		s.requireComplete = true
	}
}
