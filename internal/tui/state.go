package tui

import (
	"github.com/charmbracelet/bubbles/table"
)

// ViewState is the screen a browser is showing.
type ViewState int

const (
	// ViewStateList shows the table.
	ViewStateList ViewState = iota
	// ViewStateDetail shows the selected row.
	ViewStateDetail
	// ViewStateQuitting is entered once the program is asked to exit.
	ViewStateQuitting
)

// Key names as reported by tea.KeyMsg.String.
const (
	keyQuit      = "q"
	keyCtrlC     = "ctrl+c"
	keyEnter     = "enter"
	keyEsc       = "esc"
	keyBackspace = "backspace"
	keySlash     = "/"
)

// Layout defaults, used until the first tea.WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 24
	// chromeRows is the space taken by the title, help line and borders.
	chromeRows     = 6
	minTableHeight = 3
	borderPadding  = 2
)

func tableHeight(windowHeight int) int {
	return max(windowHeight-chromeRows, minTableHeight)
}

func newTable(columns []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}
