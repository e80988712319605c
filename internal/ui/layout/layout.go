// Package layout draws the chrome shared by every screen: the title bar,
// the key-hint bar and the frame between them.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/vatly/vatly/internal/ui/theme"
)

// The smallest terminal a quiz table and its hint bar fit in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// barHeight is one text row plus the rounded border.
const barHeight = 3

const brand = "Vật lý THPT"

// KeyHint is one "key action" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

var (
	bar = lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	brandStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(theme.Text)
	statusStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	keyStyle    = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight is what remains of height once both bars are drawn.
func ContentHeight(height int) int {
	return max(height-2*barHeight, 0)
}

// RenderMinSizeMessage asks for a larger terminal, centered in the space
// that is available.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Cửa sổ quá nhỏ!\n\nHãy mở rộng tối thiểu\n%d x %d\n\nHiện tại: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// RenderHeader draws the brand on the left, title in the middle and
// status (model and queue size) on the right. The title is cut first
// when the bar is narrow.
func RenderHeader(title, status string, width int) string {
	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	left := brandStyle.Render(brand)
	right := statusStyle.Render(status)

	room := inner - lipgloss.Width(left) - lipgloss.Width(right) - 2
	center := titleStyle.Render(Truncate(title, room))

	gap := inner - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	lg := max(gap/2, 1)
	row := left + strings.Repeat(" ", lg) + center + strings.Repeat(" ", max(gap-lg, 1)) + right
	return bar.Width(width).Render(row)
}

// RenderFooter lists the key hints in order.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar.Width(width).Render(strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, giving content whatever
// height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Truncate cuts s to width cells, ending in an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
