package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, warm paper tones on a dark background.
var (
	Primary   = lipgloss.Color("#D97706") // Amber
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#A78BFA") // Lavender
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F5F5F4") // Stone white
	TextDim   = lipgloss.Color("#A8A29E") // Stone
	BgDark    = lipgloss.Color("#1C1917") // Near black
	BgCard    = lipgloss.Color("#292524") // Dark stone
	Border    = lipgloss.Color("#44403C") // Stone border
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Link = lipgloss.NewStyle().
		Foreground(Secondary).
		Underline(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	Notice = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Error).
		Padding(1, 3).
		Align(lipgloss.Center)
)

// States
var (
	Cursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Chosen = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Level = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
