// Package result shows a generated question set and exports it.
package result

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vatly/vatly/internal/export"
	"github.com/vatly/vatly/internal/quiz"
	"github.com/vatly/vatly/internal/router"
	"github.com/vatly/vatly/internal/screen"
	"github.com/vatly/vatly/internal/ui/layout"
	"github.com/vatly/vatly/internal/ui/theme"
)

// savedMsg reports the outcome of an export.
type savedMsg struct {
	Path string
	Err  error
}

// Screen renders one quiz result read-only. The result is never mutated.
type Screen struct {
	result   *quiz.Result
	exporter *export.Exporter
	outDir   string

	scroll int
	saving bool
	status string
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)

// New creates a result screen. Exports are written to outDir.
func New(res *quiz.Result, exporter *export.Exporter, outDir string) *Screen {
	if exporter == nil {
		exporter = export.New()
	}
	return &Screen{result: res, exporter: exporter, outDir: outDir}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		if msg.Err != nil {
			slog.Error("export failed", "error", msg.Err)
			s.errMsg = "Xuất tệp thất bại: " + msg.Err.Error()
			s.status = ""
			return s, nil
		}
		s.errMsg = ""
		s.status = "Đã lưu: " + msg.Path
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		case "pgup":
			s.scroll -= 10
			if s.scroll < 0 {
				s.scroll = 0
			}
		case "pgdown", "space":
			s.scroll += 10
		case "e":
			return s, s.save(s.exporter.Export)
		case "x":
			return s, s.save(s.exporter.AnswerKey)
		case "h":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

// save renders and writes a document off the update loop.
func (s *Screen) save(render func(*quiz.Result) (*export.Document, error)) tea.Cmd {
	if s.saving || s.result == nil {
		return nil
	}
	s.saving = true
	res, dir := s.result, s.outDir
	return func() tea.Msg {
		doc, err := render(res)
		if err != nil {
			return savedMsg{Err: err}
		}
		path, err := export.Save(dir, doc)
		return savedMsg{Path: path, Err: err}
	}
}

func (s *Screen) View(width, height int) string {
	if s.result == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nChưa có đề nào.")
	}

	body := lipgloss.NewStyle().Width(width - 4).PaddingLeft(2)
	lines := strings.Split(body.Render(s.renderQuestions()), "\n")

	footer := s.renderStatus(width)
	rows := height - 1
	if footer != "" {
		rows -= lipgloss.Height(footer)
	}
	if rows < 1 {
		rows = 1
	}

	maxScroll := len(lines) - rows
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	end := s.scroll + rows
	if end > len(lines) {
		end = len(lines)
	}

	out := strings.Join(lines[s.scroll:end], "\n")
	if footer != "" {
		out += "\n" + footer
	}
	return out
}

// renderQuestions lays out the questions with their answers, numbered by
// position.
func (s *Screen) renderQuestions() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(s.result.Title))
	b.WriteString("\n\n")

	for i, q := range s.result.Questions {
		b.WriteString(theme.Selected.Render(fmt.Sprintf("Câu %d:", i+1)))
		b.WriteString(" " + q.Content + "\n")

		switch q.Type {
		case quiz.MultipleChoice:
			for j, opt := range q.Options {
				fmt.Fprintf(&b, "   %c. %s\n", 'A'+j, opt)
			}
		case quiz.TrueFalse:
			for j, opt := range q.Options {
				label := "-"
				if j < 4 {
					label = string(rune('a' + j))
				}
				fmt.Fprintf(&b, "   %s) %s\n", label, opt)
			}
		}

		b.WriteString(theme.SuccessText.Render("   Đáp án: " + q.CorrectAnswer))
		b.WriteString("\n")
		if q.Explanation != "" {
			b.WriteString(theme.Hint.Render("   Lời giải: " + q.Explanation))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Screen) renderStatus(width int) string {
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.saving:
		return style.Render(theme.Hint.Render("Đang xuất tệp..."))
	case s.errMsg != "":
		return style.Render(theme.ErrorText.Render(s.errMsg))
	case s.status != "":
		return style.Render(theme.SuccessText.Render(s.status))
	}
	return ""
}

func (s *Screen) Title() string {
	return "Đề đã tạo"
}

// Status reports the question count for the header.
func (s *Screen) Status() string {
	if s.result == nil {
		return ""
	}
	return fmt.Sprintf("%d câu", len(s.result.Questions))
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Cuộn"},
		{Key: "E", Description: "Xuất Word"},
		{Key: "X", Description: "Đáp án Excel"},
		{Key: "H", Description: "Trang chủ"},
		{Key: "Esc", Description: "Quay lại"},
	}
}
