package components

import (
	"github.com/abhisek/bookquiz/internal/ui/theme"
)

// Button is the primary action control. A disabled button renders dimmed;
// the owning screen decides whether a press is accepted.
type Button struct {
	Label   string
	Enabled bool
}

// NewButton creates a new button.
func NewButton(label string, enabled bool) Button {
	return Button{Label: label, Enabled: enabled}
}

// View renders the button.
func (b Button) View() string {
	label := " " + b.Label + " "
	if b.Enabled {
		return theme.ButtonActive.Render("▸" + label)
	}
	return theme.ButtonInactive.Render(label)
}
