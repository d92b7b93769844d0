package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/bookquiz/internal/ui/theme"
)

// ProgressBar shows how many questions have been answered.
type ProgressBar struct {
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a progress bar for done out of total.
func NewProgressBar(done, total, width int) ProgressBar {
	return ProgressBar{Done: done, Total: total, Width: width}
}

// View renders the bar followed by a "done/total" counter.
func (p ProgressBar) View() string {
	counter := fmt.Sprintf("  %d/%d", p.Done, p.Total)
	barWidth := max(p.Width-len(counter), 4)

	filled := 0
	if p.Total > 0 {
		filled = min(barWidth*p.Done/p.Total, barWidth)
	}
	filled = max(filled, 0)

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		theme.Hint.Render(counter)
}
