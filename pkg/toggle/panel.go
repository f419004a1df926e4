package toggle

// Panel tracks whether the side panel is shown. The zero value is closed;
// use NewPanel for the default open state.
type Panel struct {
	open bool
}

// NewPanel returns a panel in the open state.
func NewPanel() Panel {
	return Panel{open: true}
}

// IsOpen reports the current state.
func (p Panel) IsOpen() bool {
	return p.open
}

// Toggle flips the state and returns the new one.
func (p *Panel) Toggle() bool {
	p.open = !p.open
	return p.open
}

// Open shows the panel.
func (p *Panel) Open() {
	p.open = true
}

// Close hides the panel.
func (p *Panel) Close() {
	p.open = false
}

// State returns "open" or "closed" for use as a CSS modifier or data
// attribute.
func (p Panel) State() string {
	if p.open {
		return "open"
	}
	return "closed"
}
