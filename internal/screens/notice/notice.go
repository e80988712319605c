// Package notice provides a static message screen, used when a feature
// cannot run in the current configuration.
package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vatly/vatly/internal/screen"
	"github.com/vatly/vatly/internal/ui/layout"
	"github.com/vatly/vatly/internal/ui/theme"
)

// Screen shows a fixed message until the user goes back.
type Screen struct {
	title string
	body  string
}

var _ screen.Screen = (*Screen)(nil)

// New creates a notice screen.
func New(title, body string) *Screen {
	return &Screen{title: title, body: body}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *Screen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(s.body)
}

func (s *Screen) Title() string {
	return s.title
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Quay lại"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
}
