package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bookquiz/internal/screen"
)

// ReplaceScreenMsg requests the router to swap the active screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router holds the active screen. A screen hands over to the next one by
// emitting ReplaceScreenMsg; there is no way back.
type Router struct {
	active screen.Screen
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{active: initial}
}

// Init runs the initial screen's Init.
func (r *Router) Init() tea.Cmd {
	if r.active == nil {
		return nil
	}
	return r.active.Init()
}

// Replace makes s the active screen and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.active = s
	return s.Init()
}

// Active returns the active screen.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Update forwards a message to the active screen and handles ReplaceScreenMsg.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(ReplaceScreenMsg); ok {
		return r.Replace(msg.Screen)
	}
	if r.active == nil {
		return nil
	}

	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
