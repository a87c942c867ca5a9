package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
//
//nolint:gochecknoglobals // Read-only style constants.
var (
	ColorHeader   = lipgloss.Color("39")
	ColorBorder   = lipgloss.Color("240")
	ColorAccent   = lipgloss.Color("42")
	ColorLabel    = lipgloss.Color("245")
	ColorValue    = lipgloss.Color("255")
	ColorMuted    = lipgloss.Color("241")
	ColorSelected = lipgloss.Color("229")
	ColorSelectBg = lipgloss.Color("57")
)

// Shared styles for boxed summaries, detail views and tables.
//
//nolint:gochecknoglobals // Read-only style constants.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	BoxStyle    = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true)
	TableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSelected).
				Background(ColorSelectBg)
)
