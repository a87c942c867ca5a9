// Package transport models the road, sea and air legs that move goods
// between the countries of consecutive life-cycle stages.
package transport

import (
	"fmt"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/unit"
)

// InlandRoad is the road distance added to the ennobling leg for shuttling
// between sites of the same country.
const InlandRoad = unit.Length(500)

// Leg is one transport leg: the distance covered by each mode and the
// impacts of moving the goods over them.
type Leg struct {
	Road    unit.Length   `json:"road"`
	Sea     unit.Length   `json:"sea"`
	Air     unit.Length   `json:"air"`
	Impacts impact.Vector `json:"impacts"`
}

// Plus returns the modewise sum of two legs.
func (l Leg) Plus(o Leg) Leg {
	return Leg{
		Road:    l.Road.Plus(o.Road),
		Sea:     l.Sea.Plus(o.Sea),
		Air:     l.Air.Plus(o.Air),
		Impacts: impact.Add(l.Impacts, o.Impacts),
	}
}

// Processes are the per t·km processes of each mode.
type Processes struct {
	Road catalog.Process
	Sea  catalog.Process
	Air  catalog.Process
}

// Distances resolves the distance between two countries.
type Distances interface {
	Distance(from, to catalog.CountryCode) (catalog.Distance, error)
}

// Between returns the raw distance between two countries. A missing pair is
// an error, never a zero distance.
func Between(db Distances, from, to catalog.CountryCode) (catalog.Distance, error) {
	d, err := db.Distance(from, to)
	if err != nil {
		return catalog.Distance{}, fmt.Errorf("transport %s to %s: %w", from, to, err)
	}
	return d, nil
}

// RoadSeaRatio returns the share of the non-air transport done by road. A
// ratio declared in the distance table wins; otherwise short road
// distances go by road and long ones by sea.
func RoadSeaRatio(d catalog.Distance) unit.Ratio {
	if d.RoadSeaRatio != nil {
		return *d.RoadSeaRatio
	}
	road := d.Road.InKilometers()
	switch {
	case road == 0:
		return 0
	case d.Sea == 0:
		return 1
	case road < 500:
		return 1
	case road < 1000:
		return 0.9
	case road < 2000:
		return 0.5
	case road < 3000:
		return 0.25
	default:
		return 0
	}
}

// Split returns the distance covered by each mode once air takes its share
// and road and sea share the rest.
func Split(d catalog.Distance, air unit.Ratio) Leg {
	road := RoadSeaRatio(d)
	rest := air.Complement().Float()
	return Leg{
		Road: d.Road.MultiplyBy(road.Float() * rest),
		Sea:  d.Sea.MultiplyBy(road.Complement().Float() * rest),
		Air:  d.Air.MultiplyBy(air.Float()),
	}
}

// Impacts returns the impacts of moving mass over leg:
// Σ mass(t) × distance(km) × process per t·km.
func Impacts(mass unit.Mass, leg Leg, p Processes) impact.Vector {
	t := mass.InTonnes()
	return impact.Filter(impact.Sum(
		impact.Scale(p.Road.Impacts, t*leg.Road.InKilometers()),
		impact.Scale(p.Sea.Impacts, t*leg.Sea.InKilometers()),
		impact.Scale(p.Air.Impacts, t*leg.Air.InKilometers()),
	), func(c impact.Code) bool { return !c.IsComposite() })
}

// Compute splits d with the air ratio, optionally adds the inland road
// distance, and fills in the impacts of moving mass.
func Compute(mass unit.Mass, d catalog.Distance, air unit.Ratio, inland bool, p Processes) Leg {
	leg := Split(d, air)
	if inland {
		leg.Road = leg.Road.Plus(InlandRoad)
	}
	leg.Impacts = Impacts(mass, leg, p)
	return leg
}
