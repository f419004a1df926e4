// Package text renders a session view for terminals: a plain listing, a
// lipgloss-styled listing, or a JSON snapshot.
package text
