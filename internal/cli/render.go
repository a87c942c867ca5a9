package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/rshade/ecofocus/internal/config"
	"github.com/rshade/ecofocus/internal/greenops"
	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/simulator"
	"github.com/rshade/ecofocus/internal/transport"
	"github.com/rshade/ecofocus/internal/tui"
)

const tabPadding = 2

// checkFormat rejects output formats the renderers do not know.
func checkFormat(format string) error {
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want table, json or yaml)", format)
	}
}

// LegView is the printable form of a transport leg.
type LegView struct {
	RoadKm  float64            `json:"roadKm"  yaml:"road_km"`
	SeaKm   float64            `json:"seaKm"   yaml:"sea_km"`
	AirKm   float64            `json:"airKm"   yaml:"air_km"`
	Impacts map[string]float64 `json:"impacts" yaml:"impacts"`
}

// StageView is the printable form of a simulated stage.
type StageView struct {
	Label     string             `json:"label"     yaml:"label"`
	Country   string             `json:"country"   yaml:"country"`
	InputKg   float64            `json:"inputKg"   yaml:"input_kg"`
	OutputKg  float64            `json:"outputKg"  yaml:"output_kg"`
	WasteKg   float64            `json:"wasteKg"   yaml:"waste_kg"`
	Impacts   map[string]float64 `json:"impacts"   yaml:"impacts"`
	Transport LegView            `json:"transport" yaml:"transport"`
}

// ResultView is the printable form of a simulation result, used by the
// JSON and YAML outputs.
type ResultView struct {
	Source       string                       `json:"source,omitempty"       yaml:"source,omitempty"`
	MassKg       float64                      `json:"massKg"                 yaml:"mass_kg"`
	DaysOfWear   float64                      `json:"daysOfWear"             yaml:"days_of_wear"`
	UseCycles    int                          `json:"useCycles"              yaml:"use_cycles"`
	Impacts      map[string]float64           `json:"impacts"                yaml:"impacts"`
	ImpactsPerKg map[string]float64           `json:"impactsPerKg,omitempty" yaml:"impacts_per_kg,omitempty"`
	Transport    LegView                      `json:"transport"              yaml:"transport"`
	Equivalents  []greenops.EquivalencyResult `json:"equivalents,omitempty"  yaml:"equivalents,omitempty"`
	Stages       []StageView                  `json:"stages,omitempty"       yaml:"stages,omitempty"`
}

// NewResultView converts res. Stages are only listed when detailed is set.
func NewResultView(res *simulator.Result, detailed bool) ResultView {
	view := ResultView{
		MassKg:     res.Mass.InKilograms(),
		DaysOfWear: res.DaysOfWear,
		UseCycles:  res.UseCycles,
		Impacts:    vectorMap(res.Impacts),
		Transport:  legView(res.Transport),
	}
	if perKg, err := res.ImpactsPerKg(); err == nil {
		view.ImpactsPerKg = vectorMap(perKg)
	}
	if eq := greenops.FromImpacts(res.Impacts); !eq.IsEmpty {
		view.Equivalents = eq.Results
	}
	if detailed {
		for _, st := range res.Stages {
			view.Stages = append(view.Stages, StageView{
				Label:     string(st.Label),
				Country:   string(st.Country),
				InputKg:   st.InputMass.InKilograms(),
				OutputKg:  st.OutputMass.InKilograms(),
				WasteKg:   st.Waste.InKilograms(),
				Impacts:   vectorMap(st.Impacts),
				Transport: legView(st.Transport),
			})
		}
	}
	return view
}

func vectorMap(v impact.Vector) map[string]float64 {
	m := make(map[string]float64, impact.NumCodes)
	for _, c := range impact.Codes() {
		m[c.String()] = v.Get(c)
	}
	return m
}

func legView(l transport.Leg) LegView {
	return LegView{
		RoadKm:  l.Road.InKilometers(),
		SeaKm:   l.Sea.InKilometers(),
		AirKm:   l.Air.InKilometers(),
		Impacts: vectorMap(l.Impacts),
	}
}

// writeStructured writes v as indented JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	if format == config.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderResult writes res in format. Table output is boxed and colored
// when w is a terminal.
func renderResult(w io.Writer, res *simulator.Result, defs *impact.Definitions, format string, detailed bool) error {
	if format != config.FormatTable {
		return writeStructured(w, format, NewResultView(res, detailed))
	}

	precision := config.GetOutputPrecision()
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "Mass: %s kg   Days of wear: %s   Use cycles: %d\n\n",
		greenops.FormatFloat(res.Mass.InKilograms(), 3),
		greenops.FormatFloat(res.DaysOfWear, 0),
		res.UseCycles)
	if err := writeImpactTable(&b, res, defs, precision); err != nil {
		return err
	}
	if detailed {
		b.WriteString("\n")
		if err := writeStageTable(&b, res, defs, precision); err != nil {
			return err
		}
	}
	eq := greenops.FromImpacts(res.Impacts)

	if isWriterTerminal(w) {
		return renderStyled(w, "LIFE-CYCLE IMPACTS", b.String(), eq)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if !eq.IsEmpty {
		_, err := fmt.Fprintf(w, "\n%s\n", eq.DisplayText)
		return err
	}
	return nil
}

func renderStyled(w io.Writer, title, body string, eq greenops.EquivalencyOutput) error {
	var content strings.Builder
	content.WriteString(tui.HeaderStyle.Render(title))
	content.WriteString("\n\n")
	content.WriteString(strings.TrimRight(body, "\n"))
	if !eq.IsEmpty {
		content.WriteString("\n\n")
		content.WriteString(tui.AccentStyle.Render(eq.DisplayText))
	}
	_, err := fmt.Fprintln(w, tui.BoxStyle.Render(content.String()))
	return err
}

func writeImpactTable(out io.Writer, res *simulator.Result, defs *impact.Definitions, precision int) error {
	perKg, perKgErr := res.ImpactsPerKg()

	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Code\tImpact\tTotal\tPer kg\tUnit\t")
	fmt.Fprintln(w, "----\t------\t-----\t------\t----\t")
	for _, d := range defs.All() {
		perKgCell := "-"
		if perKgErr == nil {
			perKgCell = greenops.FormatImpact(perKg.Get(d.Code), precision)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			d.Code, d.Label,
			greenops.FormatImpact(res.Impacts.Get(d.Code), precision),
			perKgCell,
			d.Unit)
	}
	return w.Flush()
}

func writeStageTable(out io.Writer, res *simulator.Result, defs *impact.Definitions, precision int) error {
	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Stage\tCountry\tInput kg\tOutput kg\tWaste kg\tcch\tecs\tRoad km\tSea km\tAir km\t")
	fmt.Fprintln(w, "-----\t-------\t--------\t---------\t--------\t---\t---\t-------\t------\t------\t")
	for _, st := range res.Stages {
		total := st.Total(defs)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			st.Label, st.Country,
			greenops.FormatFloat(st.InputMass.InKilograms(), 3),
			greenops.FormatFloat(st.OutputMass.InKilograms(), 3),
			greenops.FormatFloat(st.Waste.InKilograms(), 3),
			greenops.FormatImpact(total.Get(impact.Cch), precision),
			greenops.FormatImpact(total.Get(impact.Ecs), precision),
			greenops.FormatFloat(st.Transport.Road.InKilometers(), 0),
			greenops.FormatFloat(st.Transport.Sea.InKilometers(), 0),
			greenops.FormatFloat(st.Transport.Air.InKilometers(), 0))
	}
	return w.Flush()
}
