package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vatly/vatly/internal/ui/components"
	"github.com/vatly/vatly/internal/ui/theme"
)

const (
	titleFull    = "V Ậ T   L Ý   T H P T"
	titleCompact = "VẬT LÝ THPT"
	subtitle     = "Trợ lý học tập & tạo đề - Chương trình GDPT 2018"
	buttonWidth  = 26
)

const atom = `    .-.
 .-(   )-.
(   ( ● )   )
 '-(   )-'
    '-'`

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	if compact {
		return center.Render(style.Render(titleCompact))
	}
	return center.Render(style.Render(titleFull) + "\n" + theme.Hint.Render(subtitle))
}

func renderAtom(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(atom)
}

// renderStats shows the curriculum coverage in a double-bordered box.
func renderStats(lessons, cw int) string {
	text := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("Lớp 10 · 11 · 12   %d bài học", lessons))
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

func renderMenu(labels []string, selected, cw int) string {
	buttons := make([]string, len(labels))
	for i, label := range labels {
		buttons[i] = components.MenuButton(label, i == selected, buttonWidth)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders the menu as text lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(labels []string, selected, cw int) string {
	lines := make([]string, len(labels))
	for i, label := range labels {
		if i == selected {
			lines[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			lines[i] = theme.Unselected.Render("   " + label)
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner warns that no LLM API key is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Chưa có khóa API. Xem: vatly --help")
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("Đã có phiên bản mới %s (vatly update)", latestVersion))
}
