package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-cvform/pkg/model"
	"github.com/goliatone/go-cvform/pkg/render"
	"github.com/goliatone/go-cvform/pkg/renderers/text"
	"github.com/goliatone/go-cvform/pkg/session"
	"github.com/goliatone/go-cvform/pkg/validation"
)

const (
	menuPreview = "Preview"
	menuDone    = "Done"
)

// Session fills CV sections from a terminal. Every answer is applied to the
// shared state as an update event; submissions go through State.Submit.
type Session struct {
	state       *session.State
	driver      PromptDriver
	preview     render.Renderer
	theme       Theme
	maxAttempts int
	logger      *zap.Logger
}

// New constructs a Session over state using the survey driver unless
// WithPromptDriver is given.
func New(state *session.State, options ...Option) (*Session, error) {
	if state == nil {
		return nil, errors.New("tui: state is required")
	}
	s := &Session{
		state:       state,
		maxAttempts: DefaultMaxAttempts,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	if s.preview == nil {
		s.preview = text.New(text.WithDrafts())
	}
	return s, nil
}

// Run shows the section menu until the user picks "Done".
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		schemas := s.state.Registry().Schemas()
		options := make([]string, 0, len(schemas)+2)
		for _, schema := range schemas {
			options = append(options, fmt.Sprintf("%s (%d submitted)", schema.Title, s.state.Collection().Len(schema.Name)))
		}
		options = append(options, menuPreview, menuDone)

		choice, err := s.driver.Select(ctx, SelectConfig{
			Message: "What would you like to fill in?",
			Options: options,
		})
		if err != nil {
			return err
		}

		switch {
		case choice >= 0 && choice < len(schemas):
			if err := s.FillSection(ctx, schemas[choice].Name); err != nil {
				return err
			}
		case choice >= 0 && choice < len(options) && options[choice] == menuPreview:
			if err := s.Preview(ctx); err != nil {
				return err
			}
		case choice >= 0 && choice < len(options) && options[choice] == menuDone:
			return nil
		default:
			return fmt.Errorf("tui: invalid menu choice %d", choice)
		}
	}
}

// Preview prints the current view through the preview renderer.
func (s *Session) Preview(ctx context.Context) error {
	view := s.state.View()
	out, err := s.preview.Render(ctx, view, render.RenderOptions{Errors: render.DraftErrors(view)})
	if err != nil {
		return fmt.Errorf("tui: preview: %w", err)
	}
	return s.driver.Info(ctx, strings.TrimRight(string(out), "\n"))
}

// FillSection prompts every field of section, applies the answers and offers
// to submit. Repeatable sections offer another round after each submission.
func (s *Session) FillSection(ctx context.Context, section string) error {
	schema, err := s.state.Registry().Schema(section)
	if err != nil {
		return err
	}

	for {
		if err := s.promptFields(ctx, schema); err != nil {
			return err
		}

		submit, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Submit %s?", schema.Title),
			Default: true,
		})
		if err != nil {
			return err
		}
		if !submit {
			return s.info(ctx, fmt.Sprintf("%s kept as draft", schema.Title))
		}

		if _, err := s.state.Submit(schema.Name); err != nil {
			var incomplete *model.IncompleteRecordError
			if !errors.As(err, &incomplete) {
				return err
			}
			if err := s.failure(ctx, err.Error()); err != nil {
				return err
			}
			retry, err := s.driver.Confirm(ctx, ConfirmConfig{
				Message: fmt.Sprintf("Edit %s again?", schema.Title),
				Default: true,
			})
			if err != nil {
				return err
			}
			if !retry {
				return nil
			}
			continue
		}
		if err := s.info(ctx, fmt.Sprintf("%s saved", schema.Title)); err != nil {
			return err
		}

		if !schema.Repeatable() {
			return nil
		}
		again, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add another %s entry?", schema.Title),
		})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *Session) promptFields(ctx context.Context, schema model.SectionSchema) error {
	for _, field := range schema.Fields {
		value, err := s.ask(ctx, schema.Name, field)
		if err != nil {
			return err
		}
		if err := s.state.Update(schema.Name, field.Key, value); err != nil {
			return err
		}
	}
	return nil
}

// ask prompts for one field. Answers failing the kind check are re-asked up
// to maxAttempts times and then accepted as given.
func (s *Session) ask(ctx context.Context, section string, field model.FieldDescriptor) (string, error) {
	current := ""
	if record, err := s.state.Draft(section); err == nil {
		if value, ok := record.Get(field.Key); ok {
			current = value.String()
		}
	}

	message := field.Label
	if field.Required {
		message += " *"
	}
	help := ""
	if field.Placeholder != "" {
		help = "e.g. " + field.Placeholder
	}

	for attempt := 1; ; attempt++ {
		var (
			answer string
			err    error
		)
		if field.Kind == model.InputKindLongText {
			answer, err = s.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current, Help: help})
		} else {
			answer, err = s.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: help})
		}
		if err != nil {
			return "", err
		}

		verr := validation.Field(field, answer)
		if verr == nil {
			return answer, nil
		}
		if attempt >= s.maxAttempts {
			s.logger.Debug("accepting value after failed checks",
				zap.String("section", section),
				zap.String("key", field.Key),
				zap.Error(verr),
			)
			return answer, nil
		}
		if err := s.failure(ctx, verr.Error()); err != nil {
			return "", err
		}
		current = answer
	}
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) failure(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.ErrorPrefix+msg)
}
