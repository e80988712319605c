// Package builder implements the quiz-builder screen: pick curriculum
// coordinates, queue request items, and generate a question set.
package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/vatly/vatly/internal/curriculum"
	"github.com/vatly/vatly/internal/export"
	"github.com/vatly/vatly/internal/quiz"
	"github.com/vatly/vatly/internal/router"
	"github.com/vatly/vatly/internal/screen"
	"github.com/vatly/vatly/internal/screens/result"
	"github.com/vatly/vatly/internal/ui/components"
	"github.com/vatly/vatly/internal/ui/layout"
)

// Form fields, top to bottom.
const (
	fieldGrade = iota
	fieldChapter
	fieldLesson
	fieldType
	fieldQuantity
	fieldDifficulty
	fieldCount
)

const (
	defaultQuantity   = 5
	chapterPrompt     = "-- Chọn chương --"
	lessonPrompt      = "-- Chọn bài học --"
	missingLessonText = "Vui lòng chọn đầy đủ Chương và Bài học."
	emptyQueueText    = "Vui lòng thêm ít nhất một yêu cầu vào bảng thống kê."
	busyText          = "Đang tạo đề, vui lòng chờ..."
)

// Options configures the builder screen.
type Options struct {
	Catalog  *curriculum.Catalog // nil means curriculum.Default()
	Runner   *quiz.Runner
	Exporter *export.Exporter // nil means export.New()
	OutDir   string           // where exports are written
}

// Screen is the quiz-builder screen. All state is owned by the screen and
// mutated only from Update; generation runs in a tea.Cmd.
type Screen struct {
	catalog  *curriculum.Catalog
	queue    *quiz.Queue
	runner   *quiz.Runner
	exporter *export.Exporter
	outDir   string

	grades   []curriculum.Grade
	chapters []curriculum.Chapter
	lessons  []curriculum.Lesson

	fields []components.Selector
	focus  int // a field index, or fieldCount for the queue list
	cursor int // highlighted queue row

	spinner    spinner.Model
	generating bool
	errMsg     string
	notice     string
}

var (
	_ screen.Screen = (*Screen)(nil)
	_ screen.Closer = (*Screen)(nil)
)

// New creates a builder screen with an empty queue.
func New(opts Options) *Screen {
	if opts.Catalog == nil {
		opts.Catalog = curriculum.Default()
	}
	if opts.Exporter == nil {
		opts.Exporter = export.New()
	}

	s := &Screen{
		catalog:  opts.Catalog,
		queue:    quiz.NewQueue(opts.Catalog),
		runner:   opts.Runner,
		exporter: opts.Exporter,
		outDir:   opts.OutDir,
		grades:   opts.Catalog.Grades(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	gradeLabels := make([]string, len(s.grades))
	for i, g := range s.grades {
		gradeLabels[i] = g.String()
	}
	typeLabels := make([]string, 0, 3)
	for _, t := range quiz.QuestionTypes() {
		typeLabels = append(typeLabels, string(t))
	}
	quantityLabels := make([]string, 0, quiz.MaxQuantity)
	for n := quiz.MinQuantity; n <= quiz.MaxQuantity; n++ {
		quantityLabels = append(quantityLabels, strconv.Itoa(n))
	}
	diffLabels := make([]string, 0, 3)
	for _, d := range quiz.Difficulties() {
		diffLabels = append(diffLabels, string(d))
	}

	s.fields = []components.Selector{
		fieldGrade:      components.NewSelector("Lớp", gradeLabels),
		fieldChapter:    components.NewSelector("Chương", nil),
		fieldLesson:     components.NewSelector("Bài học", nil),
		fieldType:       components.NewSelector("Hình thức", typeLabels),
		fieldQuantity:   components.NewSelector("Số câu", quantityLabels),
		fieldDifficulty: components.NewSelector("Mức độ", diffLabels),
	}
	s.fields[fieldQuantity].Index = defaultQuantity - quiz.MinQuantity
	s.fields[fieldDifficulty].Index = 1 // Hiểu
	s.fields[fieldGrade].Focused = true
	s.resetChapters()
	return s
}

// resetChapters reloads the chapter list for the selected grade and clears
// the chapter and lesson choice.
func (s *Screen) resetChapters() {
	s.chapters = s.catalog.Chapters(s.grade())
	labels := []string{chapterPrompt}
	for _, ch := range s.chapters {
		labels = append(labels, ch.Name)
	}
	s.fields[fieldChapter].SetOptions(labels)
	s.resetLessons()
}

// resetLessons reloads the lessons for the selected chapter and clears the
// lesson choice.
func (s *Screen) resetLessons() {
	s.lessons = s.catalog.Lessons(s.grade(), s.chapterID())
	labels := []string{lessonPrompt}
	for _, l := range s.lessons {
		labels = append(labels, l.Name)
	}
	s.fields[fieldLesson].SetOptions(labels)
}

func (s *Screen) grade() curriculum.Grade {
	i := s.fields[fieldGrade].Index
	if i < 0 || i >= len(s.grades) {
		return 0
	}
	return s.grades[i]
}

// chapterID returns "" while the prompt entry is selected.
func (s *Screen) chapterID() string {
	i := s.fields[fieldChapter].Index - 1
	if i < 0 || i >= len(s.chapters) {
		return ""
	}
	return s.chapters[i].ID
}

func (s *Screen) lessonID() string {
	i := s.fields[fieldLesson].Index - 1
	if i < 0 || i >= len(s.lessons) {
		return ""
	}
	return s.lessons[i].ID
}

// selection builds the pending selection from the form.
func (s *Screen) selection() quiz.Selection {
	qty, _ := strconv.Atoi(s.fields[fieldQuantity].Value())
	return quiz.Selection{
		Grade:      s.grade(),
		ChapterID:  s.chapterID(),
		LessonID:   s.lessonID(),
		Type:       quiz.QuestionType(s.fields[fieldType].Value()),
		Quantity:   qty,
		Difficulty: quiz.Difficulty(s.fields[fieldDifficulty].Value()),
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		if msg.runner != s.runner || !s.generating {
			slog.Debug("dropping stale quiz result")
			return s, nil
		}
		return s, s.handleGenerated(msg)

	case spinner.TickMsg:
		if !s.generating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		s.moveFocus(-1)
		return nil
	case "down", "j", "tab":
		s.moveFocus(1)
		return nil
	case "g":
		return s.generate()
	case "v":
		if res := s.currentResult(); res != nil {
			return s.showResult(res)
		}
		return nil
	}

	if s.focus == fieldCount {
		switch msg.String() {
		case "d", "x", "delete", "backspace":
			s.removeSelected()
		}
		return nil
	}

	switch msg.String() {
	case "enter", "a":
		s.addSelection()
		return nil
	}

	var changed bool
	s.fields[s.focus], changed = s.fields[s.focus].Update(msg)
	if changed {
		switch s.focus {
		case fieldGrade:
			s.resetChapters()
		case fieldChapter:
			s.resetLessons()
		}
	}
	return nil
}

// moveFocus walks the form fields and then the queue rows.
func (s *Screen) moveFocus(delta int) {
	if s.focus == fieldCount {
		next := s.cursor + delta
		switch {
		case next < 0:
			s.setFocus(fieldCount - 1)
		case next < s.queue.Len():
			s.cursor = next
		}
		return
	}

	next := s.focus + delta
	if next < 0 {
		return
	}
	if next >= fieldCount {
		if s.queue.Len() == 0 {
			return
		}
		s.cursor = 0
	}
	s.setFocus(next)
}

func (s *Screen) setFocus(f int) {
	for i := range s.fields {
		s.fields[i].Focused = i == f
	}
	s.focus = f
}

func (s *Screen) addSelection() {
	s.notice = ""
	item, err := s.queue.Add(s.selection())
	if err != nil {
		if errors.Is(err, quiz.ErrInvalidSelection) && (s.chapterID() == "" || s.lessonID() == "") {
			s.errMsg = missingLessonText
		} else {
			s.errMsg = err.Error()
		}
		return
	}
	s.errMsg = ""
	s.notice = fmt.Sprintf("Đã thêm: %s (%d câu)", item.LessonName, item.Quantity)
}

func (s *Screen) removeSelected() {
	items := s.queue.Items()
	if s.cursor < 0 || s.cursor >= len(items) {
		return
	}
	s.queue.Remove(items[s.cursor].ID)
	if s.cursor >= s.queue.Len() {
		s.cursor = s.queue.Len() - 1
	}
	if s.queue.Len() == 0 {
		s.setFocus(fieldCount - 1)
		s.cursor = 0
	}
}

// generate starts a run over a snapshot of the queue. Repeated presses
// while a run is in flight are ignored.
func (s *Screen) generate() tea.Cmd {
	if s.generating {
		s.notice = busyText
		return nil
	}
	items := s.queue.Items()
	if len(items) == 0 {
		s.errMsg = emptyQueueText
		return nil
	}
	if s.runner == nil {
		s.errMsg = quiz.GenerationFailedMessage
		return nil
	}

	s.generating = true
	s.errMsg = ""
	s.notice = ""
	runner := s.runner
	slog.Info("starting quiz generation", "items", len(items), "questions", quiz.TotalQuestions(items))

	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		res, err := runner.Run(context.Background(), items)
		return generatedMsg{runner: runner, Result: res, Err: err}
	})
}

func (s *Screen) handleGenerated(msg generatedMsg) tea.Cmd {
	s.generating = false
	if msg.Err != nil {
		slog.Warn("quiz generation failed", "error", msg.Err)
		switch {
		case errors.Is(msg.Err, quiz.ErrGenerationInFlight):
			s.notice = busyText
		case errors.Is(msg.Err, quiz.ErrRunnerClosed):
		default:
			s.errMsg = quiz.GenerationFailedMessage
		}
		return nil
	}
	return s.showResult(msg.Result)
}

// Close shuts the runner down when the screen leaves the stack. A run
// still in flight finishes but its result is dropped.
func (s *Screen) Close() {
	if s.runner != nil {
		s.runner.Close()
	}
}

func (s *Screen) currentResult() *quiz.Result {
	if s.runner == nil {
		return nil
	}
	return s.runner.Result()
}

func (s *Screen) showResult(res *quiz.Result) tea.Cmd {
	view := result.New(res, s.exporter, s.outDir)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: view}
	}
}

func (s *Screen) Title() string {
	return "Tạo đề"
}

// Status reports the queue size for the header.
func (s *Screen) Status() string {
	return fmt.Sprintf("%d mục · %d câu", s.queue.Len(), s.queue.TotalQuestions())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Chọn dòng"},
		{Key: "←→", Description: "Đổi giá trị"},
		{Key: "Enter", Description: "Thêm"},
		{Key: "G", Description: "Tạo đề"},
	}
	if s.focus == fieldCount {
		hints[2] = layout.KeyHint{Key: "D", Description: "Xóa mục"}
	}
	if s.currentResult() != nil {
		hints = append(hints, layout.KeyHint{Key: "V", Description: "Xem đề"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quay lại"})
}
