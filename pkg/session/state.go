package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-cvform/pkg/cv"
	"github.com/goliatone/go-cvform/pkg/draft"
	"github.com/goliatone/go-cvform/pkg/model"
	"github.com/goliatone/go-cvform/pkg/registry"
	"github.com/goliatone/go-cvform/pkg/toggle"
)

// State is the application-scoped owner of drafts, the collection and the
// panel.
type State struct {
	mu sync.Mutex

	registry        *registry.Registry
	cells           map[string]*SectionCell
	collection      *cv.Collection
	panel           toggle.Panel
	toggle          toggle.Content
	requireComplete bool
	logger          *zap.Logger
}

// New mounts one cell per registered section.
func New(reg *registry.Registry, options ...Option) (*State, error) {
	if reg == nil {
		return nil, fmt.Errorf("session: registry is nil")
	}
	s := &State{
		registry:   reg,
		cells:      make(map[string]*SectionCell),
		collection: cv.New(),
		panel:      toggle.NewPanel(),
		toggle:     toggle.Hamburger{},
		logger:     zap.NewNop(),
	}
	for _, schema := range reg.Schemas() {
		s.cells[schema.Name] = NewSectionCell(schema)
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Registry exposes the schema registry the state was mounted with.
func (s *State) Registry() *registry.Registry {
	return s.registry
}

// Update applies a field edit to the section's draft.
func (s *State) Update(section, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell, err := s.cell(section)
	if err != nil {
		return err
	}
	if err := cell.Update(key, value); err != nil {
		s.logger.Warn("field update rejected",
			zap.String("section", section),
			zap.String("key", key),
			zap.Error(err),
		)
		return err
	}
	s.logger.Debug("field updated", zap.String("section", section), zap.String("key", key))
	return nil
}

// UpdateMany applies several edits to one section atomically: every key is
// checked before any is written, so an undeclared key rejects the whole
// batch. Keys are applied in schema order.
func (s *State) UpdateMany(section string, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell, err := s.cell(section)
	if err != nil {
		return err
	}
	next := cell.Draft()
	for key := range values {
		if !next.Has(key) {
			err := &model.UnknownFieldKeyError{Section: section, Key: key}
			s.logger.Warn("field update rejected", zap.String("section", section), zap.String("key", key), zap.Error(err))
			return err
		}
	}
	for _, key := range next.Keys() {
		value, ok := values[key]
		if !ok {
			continue
		}
		if next, err = draft.ApplyFieldUpdate(next, key, value); err != nil {
			return err
		}
	}
	cell.record = next
	s.logger.Debug("fields updated", zap.String("section", section), zap.Int("count", len(values)))
	return nil
}

// Submit converts the section's draft into a submitted record, stores it in
// the collection and resets the draft.
func (s *State) Submit(section string) (cv.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell, err := s.cell(section)
	if err != nil {
		return cv.Entry{}, err
	}

	var opts []draft.SubmitOption
	if s.requireComplete {
		opts = append(opts, draft.RequireComplete(cell.schema))
	}
	record, err := draft.ToSubmittedRecord(cell.Draft(), opts...)
	if err != nil {
		s.logger.Warn("submit rejected", zap.String("section", section), zap.Error(err))
		return cv.Entry{}, err
	}
	entry, err := s.collection.Add(cell.schema, record)
	if err != nil {
		return cv.Entry{}, err
	}
	cell.Reset()
	s.logger.Info("section submitted",
		zap.String("section", section),
		zap.String("entry", entry.ID),
		zap.Int("records", s.collection.Len(section)),
	)
	return entry, nil
}

// Reset discards the section's draft.
func (s *State) Reset(section string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell, err := s.cell(section)
	if err != nil {
		return err
	}
	cell.Reset()
	return nil
}

// Draft returns the current draft of a section.
func (s *State) Draft(section string) (draft.DraftRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell, err := s.cell(section)
	if err != nil {
		return draft.DraftRecord{}, err
	}
	return cell.Draft(), nil
}

// TogglePanel flips the side panel and returns whether it is now open.
func (s *State) TogglePanel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	open := s.panel.Toggle()
	s.logger.Debug("panel toggled", zap.String("state", s.panel.State()))
	return open
}

// View captures everything a renderer needs in one consistent snapshot.
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		Panel:  s.panel,
		Toggle: s.toggle,
	}
	for _, schema := range s.registry.Schemas() {
		cell := s.cells[schema.Name]
		section := SectionView{
			Schema: schema,
			Draft:  cell.Draft(),
		}
		if schema.Repeatable() {
			section.Entries = s.collection.Entries(schema.Name)
		} else if entry, ok := s.collection.Single(schema.Name); ok {
			section.Entries = []cv.Entry{entry}
		}
		view.Sections = append(view.Sections, section)
	}
	return view
}

// Collection returns the state's collection. Callers must not add to it
// directly while the state is in use.
func (s *State) Collection() *cv.Collection {
	return s.collection
}

// CollectionJSON encodes the collection while holding the state lock, so it
// is safe to call concurrently with events.
func (s *State) CollectionJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return json.Marshal(s.collection)
}

func (s *State) cell(section string) (*SectionCell, error) {
	cell, ok := s.cells[section]
	if !ok {
		return nil, &model.UnknownSectionError{Section: section}
	}
	return cell, nil
}
