// Package router keeps the stack of screens the app navigates through.
// The bottom screen is the home menu and is never popped.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/vatly/vatly/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the previous screen.
type PopScreenMsg struct{}

// PopToRootMsg returns to the home menu, closing everything above it.
type PopToRootMsg struct{}

// ReplaceScreenMsg swaps the top screen without changing the depth.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router is a screen stack. Screens implementing screen.Closer are
// closed when they leave it.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) > 1 {
		r.drop(len(r.stack) - 1)
	}
	return nil
}

// PopToRoot closes every screen above the root, topmost first.
func (r *Router) PopToRoot() tea.Cmd {
	if len(r.stack) > 1 {
		r.drop(1)
	}
	return nil
}

// drop closes and removes stack[from:], topmost first.
func (r *Router) drop(from int) {
	for i := len(r.stack) - 1; i >= from; i-- {
		if c, ok := r.stack[i].(screen.Closer); ok {
			c.Close()
		}
		r.stack[i] = nil
	}
	r.stack = r.stack[:from]
}

// Replace puts s in place of the top screen, closing the old one unless
// it is s itself.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if n := len(r.stack); n > 0 && r.stack[n-1] != s {
		r.drop(n - 1)
	} else if n > 0 {
		r.stack = r.stack[:n-1]
	}
	return r.Push(s)
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	next, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}
