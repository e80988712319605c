package components

import (
	"charm.land/bubbles/v2/key"

	"github.com/vatly/vatly/internal/ui/layout"
)

// Navigation bindings shared by menus and selectors.
var (
	KeyUp     = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "lên"))
	KeyDown   = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "xuống"))
	KeyPrev   = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "trước"))
	KeyNext   = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "sau"))
	KeyChoose = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "chọn"))
)

// Hints turns bindings into footer hints, skipping disabled ones.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}
