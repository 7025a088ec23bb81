// Package router keeps a stack of screens and routes navigation
// messages between them. Screens navigate by emitting Push/Pop/Replace
// messages from their Update rather than holding references to each
// other.
package router

import (
	"github.com/kunal/vetta/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg puts a new screen on top of the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg removes the active screen, revealing the one below.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen in place, keeping depth.
// The interview flow uses this for welcome -> interview -> summary so
// there is never a stale session screen to pop back to.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router owns the screen stack. The bottom screen can never be popped.
type Router struct {
	stack []screen.Screen
}

func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push activates s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop discards the active screen. No-op when only one screen remains.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
	return nil
}

// Replace swaps the active screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active is the screen currently receiving input.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth reports how many screens are stacked.
func (r *Router) Depth() int { return len(r.stack) }

// Update intercepts navigation messages and forwards everything else
// to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen at the given content size.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
