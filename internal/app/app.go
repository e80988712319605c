// Package app hosts the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vatly/vatly/internal/router"
	"github.com/vatly/vatly/internal/screen"
	"github.com/vatly/vatly/internal/screens/home"
	"github.com/vatly/vatly/internal/ui/components"
	"github.com/vatly/vatly/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string // default header status, e.g. the model in use
	width  int
	height int
}

// newAppModel creates an AppModel starting at the home screen.
func newAppModel(opts home.Options, status string) AppModel {
	return AppModel{
		router: router.New(home.New(opts)),
		status: status,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	status := m.status
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Quay lại"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	}
	return append(components.Hints(components.KeyUp, components.KeyDown, components.KeyChoose),
		layout.KeyHint{Key: "Ctrl+C", Description: "Thoát"})
}

// Run starts the Bubble Tea program. status is shown in the header when the
// active screen has nothing more specific to say.
func Run(opts home.Options, status string) error {
	p := tea.NewProgram(newAppModel(opts, status))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
