package chat

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/vatly/vatly/internal/chat"
	"github.com/vatly/vatly/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	bottom := s.renderInput(width)
	rows := height - lipgloss.Height(bottom) - 1
	if rows < 1 {
		rows = 1
	}

	lines := strings.Split(s.renderTranscript(width-4), "\n")
	maxScroll := len(lines) - rows
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	end := len(lines) - s.scroll
	start := end - rows
	if start < 0 {
		start = 0
	}

	body := lipgloss.NewStyle().
		PaddingLeft(2).
		Height(rows).
		Render(strings.Join(lines[start:end], "\n"))

	return body + "\n" + bottom
}

func (s *Screen) renderTranscript(width int) string {
	wrap := lipgloss.NewStyle().Width(width).PaddingLeft(2)

	var b strings.Builder
	for _, m := range s.session.Transcript() {
		if m.Role == sess.RoleUser {
			b.WriteString(theme.UserName.Render("Bạn"))
		} else {
			b.WriteString(theme.ModelName.Render("Trợ lý"))
		}
		b.WriteString("\n")
		if len(m.Images) > 0 {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  [%d ảnh đính kèm]", len(m.Images))))
			b.WriteString("\n")
		}
		if m.Text != "" {
			b.WriteString(wrap.Render(m.Text))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Screen) renderInput(width int) string {
	var b strings.Builder

	switch {
	case s.sending:
		b.WriteString("  " + s.spinner.View() + " Đang trả lời...\n")
	case s.errMsg != "":
		b.WriteString("  " + theme.ErrorText.Render(s.errMsg) + "\n")
	}

	if len(s.pending) > 0 {
		names := make([]string, len(s.pending))
		for i, a := range s.pending {
			names[i] = a.Name
		}
		b.WriteString(theme.Hint.Render("  Đính kèm: " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(s.input.View()))
	return b.String()
}
