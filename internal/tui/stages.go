package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/ecofocus/internal/greenops"
	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/simulator"
)

// StageBrowser is the Bubble Tea model listing the stages of one
// simulation. Enter opens the full impact breakdown of a stage.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type StageBrowser struct {
	result    *simulator.Result
	defs      *impact.Definitions
	precision int

	state    ViewState
	table    table.Model
	selected int

	width  int
	height int
}

// NewStageBrowser creates a browser over the stages of res.
func NewStageBrowser(res *simulator.Result, defs *impact.Definitions, precision int) StageBrowser {
	m := StageBrowser{
		result:    res,
		defs:      defs,
		precision: precision,
		state:     ViewStateList,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.table = newTable(stageColumns(), m.stageRows(), m.height)
	return m
}

func stageColumns() []table.Column {
	return []table.Column{
		{Title: "Stage", Width: 12},   //nolint:mnd // Column width.
		{Title: "Country", Width: 8},  //nolint:mnd // Column width.
		{Title: "Input kg", Width: 9}, //nolint:mnd // Column width.
		{Title: "Waste kg", Width: 9}, //nolint:mnd // Column width.
		{Title: "cch", Width: 11},     //nolint:mnd // Column width.
		{Title: "ecs", Width: 11},     //nolint:mnd // Column width.
		{Title: "Road km", Width: 8},  //nolint:mnd // Column width.
		{Title: "Sea km", Width: 8},   //nolint:mnd // Column width.
		{Title: "Air km", Width: 8},   //nolint:mnd // Column width.
	}
}

func (m StageBrowser) stageRows() []table.Row {
	rows := make([]table.Row, len(m.result.Stages))
	for i, st := range m.result.Stages {
		total := st.Total(m.defs)
		rows[i] = table.Row{
			string(st.Label),
			string(st.Country),
			greenops.FormatFloat(st.InputMass.InKilograms(), 3),
			greenops.FormatFloat(st.Waste.InKilograms(), 3),
			greenops.FormatImpact(total.Get(impact.Cch), m.precision),
			greenops.FormatImpact(total.Get(impact.Ecs), m.precision),
			greenops.FormatFloat(st.Transport.Road.InKilometers(), 0),
			greenops.FormatFloat(st.Transport.Sea.InKilometers(), 0),
			greenops.FormatFloat(st.Transport.Air.InKilometers(), 0),
		}
	}
	return rows
}

// Init implements tea.Model.
func (m StageBrowser) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m StageBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.table.SetHeight(tableHeight(m.height))
		return m, nil
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

func (m StageBrowser) handleListKey(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter:
		if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.result.Stages) {
			m.selected = cursor
			m.state = ViewStateDetail
			m.table.Blur()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

func (m StageBrowser) handleDetailKey(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
func (m StageBrowser) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return RenderStageDetail(m.result.Stages[m.selected], m.defs, m.precision, m.width) + "\n" +
			SubtleStyle.Render("esc back • q quit")
	default:
		var b strings.Builder
		b.WriteString(HeaderStyle.Render("LIFE-CYCLE STAGES"))
		b.WriteString("  ")
		b.WriteString(LabelStyle.Render(fmt.Sprintf("Mass %s kg   Total cch %s",
			greenops.FormatFloat(m.result.Mass.InKilograms(), 3),
			greenops.FormatImpact(m.result.Impacts.Get(impact.Cch), m.precision))))
		b.WriteString("\n\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("↑/↓ move • enter details • q quit"))
		return b.String()
	}
}

// State returns the screen being shown.
func (m StageBrowser) State() ViewState { return m.state }

// Selected returns the index of the stage opened in the detail view.
func (m StageBrowser) Selected() int { return m.selected }

// RenderStageDetail renders a boxed breakdown of st: masses, energies,
// processes, transport and every impact of the stage including its leg.
func RenderStageDetail(st simulator.Stage, defs *impact.Definitions, precision, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("STAGE " + strings.ToUpper(string(st.Label))))
	content.WriteString("\n\n")
	writeField(&content, "Country:", string(st.Country))
	writeField(&content, "Input:", greenops.FormatFloat(st.InputMass.InKilograms(), 4)+" kg")
	writeField(&content, "Output:", greenops.FormatFloat(st.OutputMass.InKilograms(), 4)+" kg")
	writeField(&content, "Waste:", greenops.FormatFloat(st.Waste.InKilograms(), 4)+" kg")
	writeField(&content, "Heat:", greenops.FormatFloat(st.HeatMJ, 3)+" MJ")
	writeField(&content, "Electricity:", greenops.FormatFloat(st.KWh, 3)+" kWh")
	writeField(&content, "Transport:", fmt.Sprintf("road %s km, sea %s km, air %s km",
		greenops.FormatFloat(st.Transport.Road.InKilometers(), 0),
		greenops.FormatFloat(st.Transport.Sea.InKilometers(), 0),
		greenops.FormatFloat(st.Transport.Air.InKilometers(), 0)))

	if len(st.Processes) > 0 {
		content.WriteString("\n")
		content.WriteString(HeaderStyle.Render("PROCESSES"))
		content.WriteString("\n")
		for _, p := range st.Processes {
			content.WriteString("- " + p + "\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(HeaderStyle.Render("IMPACTS"))
	content.WriteString("\n")
	total := st.Total(defs)
	for _, d := range defs.All() {
		fmt.Fprintf(&content, "%-6s %-40s %14s %s\n",
			d.Code, d.Label, greenops.FormatImpact(total.Get(d.Code), precision), d.Unit)
	}

	return BoxStyle.Width(width - borderPadding).Render(strings.TrimRight(content.String(), "\n"))
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%-13s", label)))
	b.WriteString(ValueStyle.Render(value))
	b.WriteString("\n")
}
