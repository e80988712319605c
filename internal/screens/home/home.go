// Package home implements the main menu.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	sess "github.com/vatly/vatly/internal/chat"
	"github.com/vatly/vatly/internal/curriculum"
	"github.com/vatly/vatly/internal/export"
	"github.com/vatly/vatly/internal/llm"
	"github.com/vatly/vatly/internal/quiz"
	"github.com/vatly/vatly/internal/router"
	"github.com/vatly/vatly/internal/screen"
	"github.com/vatly/vatly/internal/screens/builder"
	chatscreen "github.com/vatly/vatly/internal/screens/chat"
	"github.com/vatly/vatly/internal/screens/notice"
	"github.com/vatly/vatly/internal/ui/components"
)

const noProviderText = "Chưa cấu hình khóa API cho mô hình ngôn ngữ.\n\nĐặt VATLY_GEMINI_API_KEY (hoặc khóa của nhà cung cấp khác)\nrồi chạy lại. Xem: vatly --help"

// Options carries the collaborators the home screen hands to the feature
// screens.
type Options struct {
	Catalog  *curriculum.Catalog
	Provider llm.Provider // nil when no LLM is configured
	Quiz     quiz.Config
	Chat     sess.Config
	Exporter *export.Exporter
	OutDir   string

	// LatestVersion is set when a newer release is available.
	LatestVersion string
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu          components.Menu
	hasProvider   bool
	lessonCount   int
	latestVersion string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(opts Options) *HomeScreen {
	if opts.Catalog == nil {
		opts.Catalog = curriculum.Default()
	}

	items := []components.MenuItem{
		{Label: "TẠO ĐỀ KIỂM TRA", Action: func() tea.Cmd {
			if opts.Provider == nil {
				return push(notice.New("Tạo đề", noProviderText))
			}
			// A fresh runner per screen: leaving the builder resets the
			// queue and the result.
			return push(builder.New(builder.Options{
				Catalog:  opts.Catalog,
				Runner:   quiz.NewRunner(quiz.New(opts.Provider, opts.Quiz)),
				Exporter: opts.Exporter,
				OutDir:   opts.OutDir,
			}))
		}},
		{Label: "TRỢ LÝ VẬT LÝ", Action: func() tea.Cmd {
			if opts.Provider == nil {
				return push(notice.New("Trợ lý Vật lý", noProviderText))
			}
			return push(chatscreen.New(opts.Provider, opts.Chat))
		}},
		{Label: "THOÁT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	lessons := 0
	for _, g := range opts.Catalog.Grades() {
		for _, ch := range opts.Catalog.Chapters(g) {
			lessons += len(ch.Lessons)
		}
	}

	return &HomeScreen{
		menu:          components.NewMenu(items),
		hasProvider:   opts.Provider != nil,
		lessonCount:   lessons,
		latestVersion: opts.LatestVersion,
	}
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 100
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderAtom(cw))
	}
	sections = append(sections, renderStats(h.lessonCount, cw))
	if compact {
		sections = append(sections, renderMenuCompact(h.menu.Labels(), h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menu.Labels(), h.menu.Selected, cw))
	}
	if !h.hasProvider {
		sections = append(sections, renderLLMBanner(cw))
	}
	if h.latestVersion != "" {
		sections = append(sections, renderUpdateNote(h.latestVersion, cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Trang chủ"
}
