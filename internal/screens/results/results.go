package results

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/bookquiz/internal/quiz"
	"github.com/abhisek/bookquiz/internal/screen"
	"github.com/abhisek/bookquiz/internal/ui/components"
	"github.com/abhisek/bookquiz/internal/ui/layout"
	"github.com/abhisek/bookquiz/internal/ui/theme"
)

// ResultsScreen shows the skill level and the recommended books.
type ResultsScreen struct {
	result   qz.Recommendation
	score    int
	viewport viewport.Model

	// size the viewport content was last laid out for
	width, height int
}

var (
	_ screen.Screen          = (*ResultsScreen)(nil)
	_ screen.KeyHintProvider = (*ResultsScreen)(nil)
	_ screen.StatusProvider  = (*ResultsScreen)(nil)
)

// New creates a ResultsScreen for result.
func New(result qz.Recommendation, score int) *ResultsScreen {
	return &ResultsScreen{
		result:   result,
		score:    score,
		viewport: viewport.New(),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Recommendations"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "PgUp/PgDn", Description: "Page"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ResultsScreen) Status() *layout.Status {
	return &layout.Status{Score: s.score}
}

// AtTop reports whether the list is scrolled to the top.
func (s *ResultsScreen) AtTop() bool {
	return s.viewport.AtTop()
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); !ok {
		return s, nil
	}
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) View(width, height int) string {
	if width != s.width || height != s.height {
		first := s.width == 0
		s.width, s.height = width, height
		s.viewport.SetWidth(width)
		s.viewport.SetHeight(height)
		s.viewport.SetContent(s.render(width))
		if first {
			s.viewport.GotoTop()
		}
	}
	return s.viewport.View()
}

// render lays out the level label and one card per book.
func (s *ResultsScreen) render(width int) string {
	inner := max(width-4, 20)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		theme.Hint.Render("Your level: ") + theme.Level.Render(s.result.Level),
	))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		theme.Hint.Render(fmt.Sprintf("Final score %d", s.score)),
	))
	b.WriteString("\n\n")

	if len(s.result.Books) == 0 {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
			theme.Body.Render("No books matched this level."),
		))
		return b.String()
	}

	b.WriteString("  ")
	b.WriteString(theme.Title.Render("Recommended books"))
	b.WriteString("\n")
	for _, book := range s.result.Books {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(components.BookCard(book, inner)))
		b.WriteString("\n")
	}
	return b.String()
}
