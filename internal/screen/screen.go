// Package screen holds the contract between the router and the tutor's
// pages (home, lesson picker, quiz, result and so on).
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/vatly/vatly/internal/ui/layout"
)

// Screen is one page on the router stack. View draws only the body; the
// app frame adds the header and footer around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	// Title is shown in the middle of the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider fills the right side of the header, e.g. "Câu 3/10".
type StatusProvider interface {
	Status() string
}

// Closer is called by the router once a screen has left the stack, so a
// screen running a quiz generation can cancel it.
type Closer interface {
	Close()
}
