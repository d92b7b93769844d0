package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bookquiz/internal/ui/theme"
)

// Notice renders a blocking message box with a dismissal hint.
func Notice(message string, width int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(message) +
		"\n\n" +
		theme.Hint.Render("Press Enter to continue")
	return theme.Notice.Width(min(max(width-8, 30), 70)).Render(body)
}
