package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "a", Action: func() tea.Cmd { called = "a"; return nil }},
		{Label: "off2", Disabled: true},
		{Label: "b", Action: func() tea.Cmd { called = "b"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(keyPress('j'))
	assert.Equal(t, 3, m.Selected, "stays on last enabled item")

	m, _ = m.Update(keyPress('k'))
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "a", called)
	assert.Equal(t, []string{"off", "a", "off2", "b"}, m.Labels())
	assert.Contains(t, m.View(), "▸ a")
}

func TestSelector_Cycles(t *testing.T) {
	s := NewSelector("Lớp", []string{"10", "11", "12"})

	s, changed := s.Update(specialKey(tea.KeyRight))
	assert.False(t, changed, "unfocused selector ignores keys")
	assert.Equal(t, "10", s.Value())

	s.Focused = true
	s, changed = s.Update(specialKey(tea.KeyLeft))
	require.True(t, changed)
	assert.Equal(t, "12", s.Value())

	s, _ = s.Update(keyPress('l'))
	assert.Equal(t, "10", s.Value())

	s, changed = s.Update(keyPress('x'))
	assert.False(t, changed)

	s.SetOptions(nil)
	assert.Equal(t, "", s.Value())
	assert.Contains(t, s.View(60), "(trống)")
}

func TestTextInput_ValueAndReset(t *testing.T) {
	ti := NewTextInput("Nhập câu hỏi", 0)
	ti.Model.SetValue("  xin chào  ")
	assert.Equal(t, "xin chào", ti.Value())

	ti.Reset()
	assert.Equal(t, "", ti.Value())
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 20, ContentWidth(10))
	assert.Equal(t, 54, ContentWidth(60))
	assert.Equal(t, 72, ContentWidth(200))
}

func TestHints_SkipsDisabled(t *testing.T) {
	off := KeyNext
	off.SetEnabled(false)
	hints := Hints(KeyUp, off, KeyChoose)
	require.Len(t, hints, 2)
	assert.Equal(t, "↑/k", hints[0].Key)
	assert.Equal(t, "chọn", hints[1].Description)
}

func TestMenu_AllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "x", Disabled: true}})
	m, cmd := m.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Selected)
}
