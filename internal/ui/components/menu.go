package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/vatly/vatly/internal/ui/theme"
)

// MenuItem is one entry of a Menu. A nil Action makes enter a no-op.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor that never rests on a disabled
// item and does not wrap.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	if i := m.next(-1, 1); i >= 0 {
		m.Selected = i
	}
	return m
}

// next finds the first enabled index after from in direction step, or -1.
func (m Menu) next(from, step int) int {
	for i := from + step; i >= 0 && i < len(m.Items); i += step {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, KeyUp):
		if i := m.next(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case key.Matches(k, KeyDown):
		if i := m.next(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case key.Matches(k, KeyChoose):
		if m.Selected < len(m.Items) {
			if it := m.Items[m.Selected]; !it.Disabled && it.Action != nil {
				return m, it.Action()
			}
		}
	}
	return m, nil
}

func (m Menu) Labels() []string {
	labels := make([]string, len(m.Items))
	for i, it := range m.Items {
		labels[i] = it.Label
	}
	return labels
}

func (m Menu) View() string {
	var b strings.Builder
	for i, it := range m.Items {
		switch {
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + it.Label))
		case it.Disabled:
			b.WriteString(theme.Hint.Render("    " + it.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + it.Label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
