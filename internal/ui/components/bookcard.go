package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bookquiz/internal/quiz"
	"github.com/abhisek/bookquiz/internal/ui/theme"
)

// BookCard renders one recommended book.
func BookCard(b quiz.Book, width int) string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(b.Title))
	s.WriteString("\n")
	s.WriteString(theme.Hint.Render(fmt.Sprintf("Price %s · %d pages · %d", formatPrice(b.Price), b.Pages, b.Year)))
	if b.URL != "" {
		s.WriteString("\n")
		s.WriteString(theme.Link.Render(b.URL))
	}
	if b.Image != "" {
		s.WriteString("\n")
		s.WriteString(theme.Hint.Render("Cover: " + b.Image))
	}
	return theme.Card.Width(max(width, 20)).Render(s.String())
}

// formatPrice renders a catalogue price in its own unit. Whole amounts
// drop the fraction.
func formatPrice(p float64) string {
	if p == math.Trunc(p) {
		return strconv.FormatFloat(p, 'f', 0, 64)
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}
