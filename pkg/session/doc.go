// Package session owns the mutable state the UI hosts operate on. A
// SectionCell holds the single DraftRecord of one section; State holds one
// cell per registered section, the CV collection, the panel and the toggle
// content. Hosts never mutate drafts or the collection directly: they send
// events (Update, Submit, TogglePanel) and render the View snapshot that
// State hands back.
//
// Events are applied one at a time under a mutex, in the order they arrive,
// so a State can be shared by concurrent HTTP handlers. A failed event leaves
// the state exactly as it was.
package session
