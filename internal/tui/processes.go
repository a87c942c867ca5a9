package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/greenops"
	"github.com/rshade/ecofocus/internal/impact"
)

const filterCharLimit = 64

// ProcessBrowser is the Bubble Tea model listing catalog processes, with
// a "/" filter on name and alias.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type ProcessBrowser struct {
	all       []catalog.Process
	rows      []catalog.Process
	defs      *impact.Definitions
	precision int

	state      ViewState
	table      table.Model
	textInput  textinput.Model
	showFilter bool
	selected   int

	width  int
	height int
}

// NewProcessBrowser creates a browser over processes, pre-filtered by
// search.
func NewProcessBrowser(
	processes []catalog.Process,
	defs *impact.Definitions,
	precision int,
	search string,
) ProcessBrowser {
	ti := textinput.New()
	ti.Placeholder = "name or alias"
	ti.CharLimit = filterCharLimit
	ti.SetValue(search)

	m := ProcessBrowser{
		all:       processes,
		defs:      defs,
		precision: precision,
		state:     ViewStateList,
		textInput: ti,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.table = newTable(processColumns(), nil, m.height)
	m.applyFilter(search)
	return m
}

// MatchProcess reports whether the name or alias of p contains needle,
// ignoring case. An empty needle matches every process.
func MatchProcess(p catalog.Process, needle string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(string(p.Alias)), needle)
}

func processColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 12},    //nolint:mnd // Column width.
		{Title: "Alias", Width: 22}, //nolint:mnd // Column width.
		{Title: "Unit", Width: 8},   //nolint:mnd // Column width.
		{Title: "cch", Width: 11},   //nolint:mnd // Column width.
		{Title: "Name", Width: 44},  //nolint:mnd // Column width.
	}
}

func (m *ProcessBrowser) applyFilter(filterText string) {
	m.rows = m.rows[:0:0]
	for _, p := range m.all {
		if MatchProcess(p, filterText) {
			m.rows = append(m.rows, p)
		}
	}

	rows := make([]table.Row, len(m.rows))
	for i, p := range m.rows {
		rows[i] = table.Row{
			shorten(string(p.ID), 12), //nolint:mnd // Matches the column width.
			string(p.Alias),
			string(p.Unit),
			greenops.FormatImpact(p.Impacts.Get(impact.Cch), m.precision),
			p.Name,
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func shorten(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}

// Init implements tea.Model.
func (m ProcessBrowser) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m ProcessBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.table.SetHeight(tableHeight(m.height))
		return m, nil
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch m.state {
	case ViewStateList:
		return m.handleListKey(keyMsg)
	case ViewStateDetail:
		return m.handleDetailKey(keyMsg)
	default:
		return m, nil
	}
}

func (m ProcessBrowser) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			m.table.Focus()
			m.applyFilter(m.textInput.Value())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.applyFilter(m.textInput.Value())
	return m, cmd
}

func (m ProcessBrowser) handleListKey(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter:
		if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.rows) {
			m.selected = cursor
			m.state = ViewStateDetail
			m.table.Blur()
		}
		return m, nil
	case keySlash:
		m.showFilter = true
		m.table.Blur()
		return m, m.textInput.Focus()
	case keyEsc:
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.applyFilter("")
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

func (m ProcessBrowser) handleDetailKey(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc, keyBackspace:
		m.state = ViewStateList
		m.table.Focus()
	}
	return m, nil
}

// View implements tea.Model.
func (m ProcessBrowser) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return RenderProcessDetail(m.rows[m.selected], m.defs, m.precision, m.width) + "\n" +
			SubtleStyle.Render("esc back • q quit")
	default:
		var b strings.Builder
		b.WriteString(HeaderStyle.Render("PROCESSES"))
		b.WriteString("  ")
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%d of %d", len(m.rows), len(m.all))))
		b.WriteString("\n")
		if m.showFilter || m.textInput.Value() != "" {
			b.WriteString(AccentStyle.Render("filter: "))
			b.WriteString(m.textInput.View())
		}
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("↑/↓ move • enter details • / filter • esc clear • q quit"))
		return b.String()
	}
}

// State returns the screen being shown.
func (m ProcessBrowser) State() ViewState { return m.state }

// Visible returns the processes left by the current filter.
func (m ProcessBrowser) Visible() []catalog.Process { return m.rows }

// Filtering reports whether the filter input has focus.
func (m ProcessBrowser) Filtering() bool { return m.showFilter }

// RenderProcessDetail renders a boxed view of p with its energies, waste
// and non-zero impacts.
func RenderProcessDetail(p catalog.Process, defs *impact.Definitions, precision, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(p.Name))
	content.WriteString("\n\n")
	writeField(&content, "ID:", string(p.ID))
	if p.Alias != "" {
		writeField(&content, "Alias:", string(p.Alias))
	}
	writeField(&content, "Unit:", string(p.Unit))
	if p.Source != "" {
		writeField(&content, "Source:", p.Source)
	}
	if p.StepUsage != "" {
		writeField(&content, "Step:", p.StepUsage)
	}
	writeField(&content, "Heat:", greenops.FormatFloat(p.HeatMJ.InMegajoules(), 4)+" MJ")
	writeField(&content, "Electricity:", greenops.FormatFloat(p.ElecMJ.InMegajoules(), 4)+" MJ")
	if p.ElecPPPM > 0 {
		writeField(&content, "Per pick:", greenops.FormatFloat(p.ElecPPPM, 6)+" kWh")
	}
	writeField(&content, "Waste:", greenops.FormatFloat(p.Waste.InPercent(), 2)+" %")
	if p.Density > 0 {
		writeField(&content, "Density:", greenops.FormatFloat(p.Density, 1)+" kg/m³")
	}

	content.WriteString("\n")
	content.WriteString(HeaderStyle.Render("IMPACTS PER UNIT"))
	content.WriteString("\n")
	for _, d := range defs.All() {
		v := p.Impacts.Get(d.Code)
		if v == 0 {
			continue
		}
		fmt.Fprintf(&content, "%-6s %-40s %14s %s\n", d.Code, d.Label, greenops.FormatImpact(v, precision), d.Unit)
	}

	return BoxStyle.Width(width - borderPadding).Render(strings.TrimRight(content.String(), "\n"))
}
