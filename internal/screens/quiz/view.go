package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/bookquiz/internal/quiz"
	"github.com/abhisek/bookquiz/internal/ui/components"
	"github.com/abhisek/bookquiz/internal/ui/layout"
	"github.com/abhisek/bookquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.notice != nil {
		return layout.Center(components.Notice(qz.UserMessage(s.notice), width), width, height)
	}

	switch s.session.Phase {
	case qz.PhaseLoading:
		return s.renderBusy("Loading questions...", width, height)
	case qz.PhasePresenting:
		return s.renderQuestion(width)
	case qz.PhaseComplete:
		return s.renderComplete(width, height)
	case qz.PhaseSubmitting:
		return s.renderBusy("Finding books for you...", width, height)
	case qz.PhaseHalted:
		return renderHalted(width, height)
	}
	return ""
}

func (s *QuizScreen) renderBusy(label string, width, height int) string {
	return layout.Center(s.spinner.View()+" "+theme.Hint.Render(label), width, height)
}

// renderQuestion renders the current question, its options and the Next control.
func (s *QuizScreen) renderQuestion(width int) string {
	q := s.session.Current()
	if q == nil {
		return ""
	}

	inner := max(width-4, 20)
	var b strings.Builder

	info := theme.Hint.Render(fmt.Sprintf("  Question %d of %d", s.session.Index+1, s.session.Total()))
	if q.Difficulty > 0 {
		info += theme.Hint.Render(fmt.Sprintf("  ·  difficulty %d", q.Difficulty))
	}
	b.WriteString(info)
	b.WriteString("\n  ")
	b.WriteString(components.NewProgressBar(s.session.Index, s.session.Total(), min(inner, 60)).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(inner).
		PaddingLeft(2).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.options.View()))
	b.WriteString("\n\n  ")
	b.WriteString(components.NewButton("Next", s.session.CanAdvance()).View())

	return b.String()
}

func (s *QuizScreen) renderComplete(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("All questions answered"))
	b.WriteString("\n\n")
	if s.session.Total() > 0 {
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d of %d correct  ·  score %d",
			s.session.Correct, s.session.Total(), s.session.Score)))
	} else {
		b.WriteString(theme.Body.Render("There were no questions to answer."))
	}
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("Diagnose", true).View())

	return layout.Center(lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String()), width, height)
}

func renderHalted(width, height int) string {
	msg := theme.Body.Render("The quiz could not start.") + "\n\n" +
		theme.Hint.Render("Check the server and restart. Press Ctrl+C to quit.")
	return layout.Center(lipgloss.NewStyle().Align(lipgloss.Center).Render(msg), width, height)
}
