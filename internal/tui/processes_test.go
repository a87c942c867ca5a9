package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/impact"
)

func testProcesses() []catalog.Process {
	dyeing := impact.Zero()
	dyeing[impact.Cch] = 3.2
	return []catalog.Process{
		{ID: "p-spin", Name: "Filature, coton", Alias: "spinning", Unit: "kg", Impacts: impact.Zero()},
		{ID: "p-dye", Name: "Teinture sur fil", Alias: "dyeing-yarn", Unit: "kg", Impacts: dyeing, HeatMJ: 12, Waste: 0.05},
		{ID: "p-elec", Name: "Mix électrique réseau, FR", Alias: "elec-fr", Unit: "MJ", Impacts: impact.Zero()},
	}
}

func typeRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMatchProcess(t *testing.T) {
	p := testProcesses()[1]
	tests := []struct {
		needle string
		want   bool
	}{
		{"", true},
		{"teinture", true},
		{"TEINTURE", true},
		{"dyeing", true},
		{"weaving", false},
	}
	for _, tt := range tests {
		t.Run(tt.needle, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchProcess(p, tt.needle))
		})
	}
}

func TestNewProcessBrowser_InitialSearch(t *testing.T) {
	m := NewProcessBrowser(testProcesses(), testDefs(t), 3, "elec")
	require.Len(t, m.Visible(), 1)
	assert.Equal(t, catalog.ProcessID("p-elec"), m.Visible()[0].ID)
	assert.Contains(t, m.View(), "1 of 3")
}

func TestProcessBrowser_Filter(t *testing.T) {
	var model tea.Model = NewProcessBrowser(testProcesses(), testDefs(t), 3, "")
	assert.Len(t, model.(ProcessBrowser).Visible(), 3)

	model, cmd := model.Update(typeRunes("/"))
	assert.NotNil(t, cmd)
	assert.True(t, model.(ProcessBrowser).Filtering())

	// "q" is text while filtering, not a quit.
	model, _ = model.Update(typeRunes("q"))
	assert.Equal(t, ViewStateList, model.(ProcessBrowser).State())
	require.Len(t, model.(ProcessBrowser).Visible(), 1)
	assert.Equal(t, catalog.ProcessID("p-elec"), model.(ProcessBrowser).Visible()[0].ID)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	model, _ = model.Update(typeRunes("fil"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := model.(ProcessBrowser)
	assert.False(t, m.Filtering())
	assert.True(t, m.table.Focused())
	require.Len(t, m.Visible(), 2)
	assert.Equal(t, catalog.ProcessID("p-spin"), m.Visible()[0].ID)

	// Esc in the list clears the filter.
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Len(t, model.(ProcessBrowser).Visible(), 3)
}

func TestProcessBrowser_Detail(t *testing.T) {
	var model tea.Model = NewProcessBrowser(testProcesses(), testDefs(t), 3, "")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := model.(ProcessBrowser)
	require.Equal(t, ViewStateDetail, m.State())
	view := m.View()
	assert.Contains(t, view, "Teinture sur fil")
	assert.Contains(t, view, "dyeing-yarn")
	assert.Contains(t, view, "3.200")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, ViewStateList, model.(ProcessBrowser).State())

	model, cmd := model.Update(typeRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, ViewStateQuitting, model.(ProcessBrowser).State())
}

func TestProcessBrowser_EnterOnEmptyList(t *testing.T) {
	m := NewProcessBrowser(testProcesses(), testDefs(t), 3, "nothing matches")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewStateList, model.(ProcessBrowser).State())
}

func TestRenderProcessDetail(t *testing.T) {
	out := RenderProcessDetail(testProcesses()[1], testDefs(t), 3, 100)
	assert.Contains(t, out, "p-dye")
	assert.Contains(t, out, "12.0000 MJ")
	assert.Contains(t, out, "5.00 %")
	assert.Contains(t, out, "IMPACTS PER UNIT")
	assert.Contains(t, out, "cch")
}
