package components

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vatly/vatly/internal/ui/layout"
	"github.com/vatly/vatly/internal/ui/theme"
)

// Selector cycles through a fixed list of options with left/right.
type Selector struct {
	Label   string
	Options []string
	Index   int
	Focused bool
}

// NewSelector creates a selector on its first option.
func NewSelector(label string, options []string) Selector {
	return Selector{Label: label, Options: options}
}

// SetOptions replaces the options and moves back to the first one.
func (s *Selector) SetOptions(options []string) {
	s.Options = options
	s.Index = 0
}

// Value returns the current option, or "" when there are none.
func (s Selector) Value() string {
	if s.Index < 0 || s.Index >= len(s.Options) {
		return ""
	}
	return s.Options[s.Index]
}

// Update handles left/right when focused. changed reports whether the
// current option moved.
func (s Selector) Update(msg tea.Msg) (sel Selector, changed bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || !s.Focused || len(s.Options) == 0 {
		return s, false
	}

	prev := s.Index
	switch {
	case key.Matches(k, KeyPrev):
		s.Index = (s.Index - 1 + len(s.Options)) % len(s.Options)
	case key.Matches(k, KeyNext):
		s.Index = (s.Index + 1) % len(s.Options)
	}
	return s, s.Index != prev
}

// View renders "Label: ‹ value ›" at the given width.
func (s Selector) View(width int) string {
	label := lipgloss.NewStyle().Width(12).Foreground(theme.TextDim).Render(s.Label)

	value := s.Value()
	if value == "" {
		value = "(trống)"
	}
	if s.Focused {
		return label + theme.Focused.Render("‹ "+layout.Truncate(value, width-18)+" ›")
	}
	return label + theme.Unselected.Render("  "+layout.Truncate(value, width-18))
}
