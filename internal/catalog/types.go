package catalog

import (
	"encoding/json"

	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/unit"
)

// Process is a unit operation with fixed impacts per functional unit plus
// the physical constants the stage formulas need.
type Process struct {
	ID        ProcessID     `json:"id"`
	Name      string        `json:"name"`
	Alias     Alias         `json:"alias,omitempty"`
	Unit      ProcessUnit   `json:"unit"`
	Source    string        `json:"source,omitempty"`
	StepUsage string        `json:"stepUsage,omitempty"`
	Impacts   impact.Vector `json:"impacts"`

	// HeatMJ and ElecMJ are the energies consumed per functional unit.
	HeatMJ unit.Energy `json:"heatMJ"`
	ElecMJ unit.Energy `json:"elecMJ"`

	// ElecPPPM is the electricity in kWh per pick, for weaving.
	ElecPPPM float64 `json:"elecPPPM"`

	// Waste is the kg of waste per kg of output.
	Waste unit.Ratio `json:"waste"`

	// Density in kg/m³, when known.
	Density float64 `json:"density,omitempty"`
}

// CFF holds the Circular Footprint Formula coefficients of a material.
type CFF struct {
	ManufacturerAllocation unit.Ratio `json:"manufacturerAllocation" yaml:"manufacturerAllocation"`
	RecycledQualityRatio   unit.Ratio `json:"recycledQualityRatio"   yaml:"recycledQualityRatio"`
}

// Material is a fibre that can enter a blend.
type Material struct {
	ID              MaterialID  `json:"id"`
	Name            string      `json:"name"`
	ShortName       string      `json:"shortName"`
	Origin          Origin      `json:"origin"`
	DefaultCountry  CountryCode `json:"defaultCountry"`
	Process         ProcessID   `json:"materialProcess"`
	RecycledProcess ProcessID   `json:"recycledProcess,omitempty"`
	RecycledFrom    MaterialID  `json:"recycledFrom,omitempty"`
	CFF             *CFF        `json:"cff,omitempty"`
}

// DefaultSpinning returns the spinning method used when a blend entry does
// not choose one.
func (m Material) DefaultSpinning() Spinning {
	if m.Origin == OriginSynthetic || m.Origin == OriginArtificialInorganic {
		return SpinningSynthetic
	}
	return SpinningConventional
}

// CanBeRecycled reports whether the material declares a recycled process.
func (m Material) CanBeRecycled() bool { return m.RecycledProcess != "" }

// ProductUse holds the use-phase parameters of a product category.
type ProductUse struct {
	// IroningProcess is expressed per ironed item.
	IroningProcess ProcessID `json:"ironingProcess"`
	// NonIroningProcess (washing, drying) is expressed per kg and cycle.
	NonIroningProcess ProcessID `json:"nonIroningProcess"`
	DaysOfWear        float64   `json:"daysOfWear"`
	WearsPerCycle     float64   `json:"wearsPerCycle"`
}

// Product is a garment category and the defaults it brings to a recipe.
type Product struct {
	ID               ProductID        `json:"id"`
	Name             string           `json:"name"`
	Mass             unit.Mass        `json:"mass"`
	SurfaceMass      unit.SurfaceMass `json:"surfaceMass"`
	YarnSize         unit.YarnSize    `json:"yarnSize"`
	Fabric           Fabric           `json:"fabric"`
	MakingComplexity MakingComplexity `json:"makingComplexity"`
	MakingWaste      unit.Ratio       `json:"makingWaste"`
	MakingDeadStock  unit.Ratio       `json:"makingDeadStock"`
	Fading           bool             `json:"fading"`
	Volume           unit.Volume      `json:"volume"`
	Use              ProductUse       `json:"use"`
}

// Country carries the energy mix and default ratios of a production country.
type Country struct {
	Code               CountryCode      `json:"code"`
	Name               string           `json:"name"`
	Zone               string           `json:"zone"`
	ElectricityProcess ProcessID        `json:"electricityProcess"`
	HeatProcess        ProcessID        `json:"heatProcess"`
	DyeingWeighting    unit.Ratio       `json:"dyeingWeighting"`
	AirTransportRatio  unit.Ratio       `json:"airTransportRatio"`
	AquaticPollution   AquaticPollution `json:"aquaticPollutionScenario"`
	Scopes             []impact.Scope   `json:"scopes"`
}

// Distance is the road, sea and air distance between two countries.
// RoadSeaRatio, when set, overrides the distance-based road/sea split.
type Distance struct {
	Road         unit.Length
	Sea          unit.Length
	Air          unit.Length
	RoadSeaRatio *unit.Ratio
}

type distanceJSON struct {
	Road         *float64 `json:"road"`
	Sea          float64  `json:"sea"`
	Air          float64  `json:"air"`
	RoadSeaRatio *float64 `json:"roadSeaRatio,omitempty"`
}

// MarshalJSON encodes d; the road/sea ratio is omitted when not declared.
func (d Distance) MarshalJSON() ([]byte, error) {
	road := d.Road.InKilometers()
	out := distanceJSON{Road: &road, Sea: d.Sea.InKilometers(), Air: d.Air.InKilometers()}
	if d.RoadSeaRatio != nil {
		r := d.RoadSeaRatio.Float()
		out.RoadSeaRatio = &r
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes d. A null road distance means there is no road
// between the two countries and is stored as 0.
func (d *Distance) UnmarshalJSON(data []byte) error {
	var in distanceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*d = Distance{Sea: unit.Kilometers(in.Sea), Air: unit.Kilometers(in.Air)}
	if in.Road != nil {
		d.Road = unit.Kilometers(*in.Road)
	}
	if in.RoadSeaRatio != nil {
		r := unit.Ratio(*in.RoadSeaRatio)
		d.RoadSeaRatio = &r
	}
	return nil
}

// Distances is the country distance table. Routes are stored once per pair,
// in either direction, and looked up symmetrically.
type Distances struct {
	SameCountry Distance                                 `json:"sameCountry"`
	Routes      map[CountryCode]map[CountryCode]Distance `json:"routes"`
}

// Between returns the distance between a and b, or false when the table has
// no entry for the pair.
func (d Distances) Between(a, b CountryCode) (Distance, bool) {
	if a == b {
		return d.SameCountry, true
	}
	if dist, ok := d.Routes[a][b]; ok {
		return dist, true
	}
	dist, ok := d.Routes[b][a]
	return dist, ok
}

func (d Distances) clone() Distances {
	out := Distances{SameCountry: d.SameCountry, Routes: make(map[CountryCode]map[CountryCode]Distance, len(d.Routes))}
	for from, row := range d.Routes {
		copied := make(map[CountryCode]Distance, len(row))
		for to, dist := range row {
			copied[to] = dist
		}
		out.Routes[from] = copied
	}
	return out
}
