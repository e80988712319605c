package components

import (
	"charm.land/lipgloss/v2"

	"github.com/vatly/vatly/internal/ui/theme"
)

// Boxed sections are at most a quiz-table wide and never narrower than a
// selector row.
const (
	maxContentWidth = 72
	minContentWidth = 20
)

// ContentWidth is the inner width shared by stacked boxes so they line up
// inside a frame of frameWidth (border 2, padding 4).
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, minContentWidth), maxContentWidth)
}

// Frame centers content inside a double border of width x height.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

var box = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

// Card is a rounded box cw cells wide.
func Card(content string, cw int) string {
	return box.BorderForeground(theme.Border).Width(cw - 2).Render(content)
}

// MenuButton is a home-screen entry; the selected one is filled amber.
func MenuButton(label string, selected bool, width int) string {
	st := box.Width(width).Align(lipgloss.Center)
	if selected {
		return st.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Accent).
			BorderForeground(theme.Accent).
			Render("▸ " + label)
	}
	return st.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
}
