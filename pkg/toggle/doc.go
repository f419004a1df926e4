// Package toggle models the side panel's open/closed state and the content
// of the control that flips it. Content is a closed sum type: Hamburger,
// Icon, Avatar and Badge are its only variants, each carrying only the data
// it needs. RenderHTML is the single exhaustive match over them.
package toggle
