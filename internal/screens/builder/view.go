package builder

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vatly/vatly/internal/ui/components"
	"github.com/vatly/vatly/internal/ui/layout"
	"github.com/vatly/vatly/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var form strings.Builder
	form.WriteString(theme.Title.Render("Cấu hình yêu cầu"))
	form.WriteString("\n")
	for _, f := range s.fields {
		form.WriteString(f.View(cw - 4))
		form.WriteString("\n")
	}

	sections := []string{
		components.Card(strings.TrimRight(form.String(), "\n"), cw),
		components.Card(s.renderQueue(cw-4, height-lipgloss.Height(form.String())-8), cw),
	}

	if line := s.renderStatus(cw); line != "" {
		sections = append(sections, line)
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(sections, "\n"))
}

// renderQueue lists the queued items, scrolled so the cursor is visible.
func (s *Screen) renderQueue(width, rows int) string {
	items := s.queue.Items()

	header := theme.Title.Render(fmt.Sprintf("Bảng thống kê (%d câu)", s.queue.TotalQuestions()))
	if len(items) == 0 {
		return header + "\n" + theme.Hint.Render("Chưa có yêu cầu nào.")
	}

	if rows < 1 {
		rows = 1
	}
	start := 0
	if s.cursor >= rows {
		start = s.cursor - rows + 1
	}
	end := start + rows
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	b.WriteString(header)
	for i := start; i < end; i++ {
		it := items[i]
		line := fmt.Sprintf("%d. Lớp %d · %s · %s · %d câu · %s",
			i+1, int(it.Grade), it.LessonName, it.Type, it.Quantity, it.Difficulty)
		line = layout.Truncate(line, width-2)

		b.WriteString("\n")
		if s.focus == fieldCount && i == s.cursor {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
	}
	if end < len(items) {
		b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("  … còn %d mục", len(items)-end)))
	}
	return b.String()
}

func (s *Screen) renderStatus(width int) string {
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.generating:
		return style.Render(s.spinner.View() + " " + busyText)
	case s.errMsg != "":
		return style.Render(theme.ErrorText.Render(s.errMsg))
	case s.notice != "":
		return style.Render(theme.SuccessText.Render(s.notice))
	}
	return ""
}
