package simulator

import (
	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/recipe"
	"github.com/rshade/ecofocus/internal/transport"
	"github.com/rshade/ecofocus/internal/unit"
)

// Stage is the computed state of one life-cycle step.
type Stage struct {
	Label      recipe.Step         `json:"label"`
	Country    catalog.CountryCode `json:"country"`
	Editable   bool                `json:"editable"`
	InputMass  unit.Mass           `json:"inputMass"`
	OutputMass unit.Mass           `json:"outputMass"`
	Waste      unit.Mass           `json:"waste"`
	Impacts    impact.Vector       `json:"impacts"`
	HeatMJ     float64             `json:"heatMJ"`
	KWh        float64             `json:"kwh"`

	// Transport is the leg to the next active stage. For spinning it also
	// includes the legs bringing each material to the spinning country.
	Transport transport.Leg `json:"transport"`

	// Processes names the processes used, for display only.
	Processes []string `json:"processes"`
}

// Total returns the stage impacts plus its transport impacts, composites
// recomputed.
func (s Stage) Total(defs *impact.Definitions) impact.Vector {
	return impact.Recompute(impact.Add(s.Impacts, s.Transport.Impacts), defs)
}

// Result is the outcome of one simulation. It is never modified once
// returned.
type Result struct {
	Mass       unit.Mass     `json:"mass"`
	Stages     []Stage       `json:"stages"`
	Impacts    impact.Vector `json:"impacts"`
	Transport  transport.Leg `json:"transport"`
	DaysOfWear float64       `json:"daysOfWear"`
	UseCycles  int           `json:"useCycles"`
}

// Stage returns the computed stage for step s, or false if s was disabled.
func (r *Result) Stage(s recipe.Step) (Stage, bool) {
	for _, st := range r.Stages {
		if st.Label == s {
			return st, true
		}
	}
	return Stage{}, false
}

// ImpactsPerKg returns the total impacts per kg of product.
func (r *Result) ImpactsPerKg() (impact.Vector, error) {
	return impact.PerKg(r.Impacts, r.Mass.InKilograms())
}
