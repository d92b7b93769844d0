package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bookquiz/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestInitRunsInitialScreen(t *testing.T) {
	s1 := &stubScreen{title: "quiz"}
	r := New(s1)
	r.Init()

	if !s1.initRan {
		t.Error("expected Init() to run on initial screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "quiz"})

	s2 := &stubScreen{title: "results"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "results" {
		t.Errorf("expected active 'results', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	s1 := &stubScreen{title: "quiz"}
	s2 := &stubScreen{title: "results"}
	r := New(s1)
	r.Replace(s2)

	r.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if s1.updates != 0 || s2.updates != 1 {
		t.Errorf("expected only the active screen updated, got %d/%d", s1.updates, s2.updates)
	}
	if got := r.View(80, 24); got != "results" {
		t.Errorf("expected active view, got %q", got)
	}
}

func TestReplaceIsNotForwarded(t *testing.T) {
	s1 := &stubScreen{title: "quiz"}
	r := New(s1)

	r.Update(ReplaceScreenMsg{Screen: &stubScreen{title: "results"}})

	if s1.updates != 0 {
		t.Errorf("expected replaced screen not to see the message, got %d updates", s1.updates)
	}
}
