package formula

import (
	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/unit"
)

// Amount is the mass a stage must take in to deliver a given output, and the
// part of it lost as waste. Mass == output + Waste.
type Amount struct {
	Mass  unit.Mass
	Waste unit.Mass
}

// GenericWaste applies a waste ratio expressed per kg of output:
// waste = base × ratio, mass = base + waste.
func GenericWaste(ratio unit.Ratio, base unit.Mass) Amount {
	waste := base.MultiplyBy(ratio.Float())
	return Amount{Mass: base.Plus(waste), Waste: waste}
}

// MakingWaste applies a waste ratio expressed per kg of input:
// mass = base / (1 − ratio), waste = mass − base. Ratios are bounded below 1
// by recipe validation.
func MakingWaste(ratio unit.Ratio, base unit.Mass) Amount {
	mass := base.MultiplyBy(1 / ratio.Complement().Float())
	return Amount{Mass: mass, Waste: mass.Minus(base)}
}

// MakingDeadStock accounts for cut fabric that is never sold. It has the
// same shape as MakingWaste.
func MakingDeadStock(ratio unit.Ratio, base unit.Mass) Amount {
	return MakingWaste(ratio, base)
}

// MaterialImpacts returns the impacts of producing mass of a material whose
// recycled share is r, using the Circular Footprint Formula:
//
//	(1−r)×V×m + r×m×(A×R + (1−A)×Q×V)
//
// where V and R are the per-kg impacts of the virgin and recycled processes,
// A the manufacturer allocation and Q the recycled quality ratio. Without CFF
// data the virgin process applies to the whole mass.
func MaterialImpacts(virgin, recycled impact.Vector, r unit.Ratio, cff *catalog.CFF, mass unit.Mass) impact.Vector {
	m := mass.InKilograms()
	if cff == nil {
		return components(impact.Scale(virgin, m))
	}
	a := cff.ManufacturerAllocation.Float()
	q := cff.RecycledQualityRatio.Float()
	share := r.Float()
	out := impact.Map(impact.Zero(), func(c impact.Code, _ float64) float64 {
		v, rec := virgin.Get(c), recycled.Get(c)
		return (1-share)*v*m + share*m*(a*rec+(1-a)*q*v)
	})
	return components(out)
}

// components drops the composite scores, which only the simulator computes.
func components(v impact.Vector) impact.Vector {
	return impact.Filter(v, func(c impact.Code) bool { return !c.IsComposite() })
}
