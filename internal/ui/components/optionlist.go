package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bookquiz/internal/ui/theme"
)

// OptionList renders mutually exclusive answer options. The cursor and
// the chosen option are tracked separately; only one option can be chosen.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when nothing is chosen

	// Picked is the option picked by the last key passed to Update, or -1.
	Picked int
}

// NewOptionList creates an option list with nothing chosen.
func NewOptionList(options []string) OptionList {
	return OptionList{
		Options: options,
		Chosen:  -1,
		Picked:  -1,
	}
}

// Update moves the cursor and records a pick in Picked on space or a digit
// key. Chosen is left to the caller, who applies it via SetChosen once the
// pick has been accepted.
func (l OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	l.Picked = -1

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(l.Options) == 0 {
		return l, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
	case "down", "j":
		if l.Cursor < len(l.Options)-1 {
			l.Cursor++
		}
	case "space", " ":
		l.Picked = l.Cursor
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(l.Options) {
			l.Cursor = n - 1
			l.Picked = n - 1
		}
	}
	return l, nil
}

// SetChosen marks option i as chosen.
func (l OptionList) SetChosen(i int) OptionList {
	l.Chosen = i
	return l
}

// View renders the options as radio buttons.
func (l OptionList) View() string {
	var b strings.Builder
	for i, opt := range l.Options {
		mark := "( )"
		if i == l.Chosen {
			mark = "(•)"
		}
		prefix := "  "
		if i == l.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %d. %s", prefix, mark, i+1, opt)

		style := theme.Unselected
		switch {
		case i == l.Cursor:
			style = theme.Cursor
		case i == l.Chosen:
			style = theme.Chosen
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
