package session

import (
	"github.com/goliatone/go-cvform/pkg/cv"
	"github.com/goliatone/go-cvform/pkg/draft"
	"github.com/goliatone/go-cvform/pkg/model"
	"github.com/goliatone/go-cvform/pkg/toggle"
)

// View is an immutable snapshot of State handed to renderers.
type View struct {
	Panel    toggle.Panel
	Toggle   toggle.Content
	Sections []SectionView
}

// SectionView pairs a schema with its current draft and submitted entries.
type SectionView struct {
	Schema  model.SectionSchema
	Draft   draft.DraftRecord
	Entries []cv.Entry
}

// Section looks up a section by name.
func (v View) Section(name string) (SectionView, bool) {
	for _, section := range v.Sections {
		if section.Schema.Name == name {
			return section, true
		}
	}
	return SectionView{}, false
}

// Empty reports whether nothing has been submitted yet.
func (v View) Empty() bool {
	for _, section := range v.Sections {
		if len(section.Entries) > 0 {
			return false
		}
	}
	return true
}
