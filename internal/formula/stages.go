package formula

import (
	"math"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/unit"
)

// Physical constants of the stage models.
const (
	// MakingKWhPerMinute is the electricity of one minute of confection.
	MakingKWhPerMinute = 0.029

	// CarTrunkVolume is the volume, in m³, of the trunk used to bring a
	// garment to a collection point.
	CarTrunkVolume = 0.2

	// DistributionDistance is the road distance, in km, from the warehouse
	// to the shop.
	DistributionDistance = 500.0

	// MaxPrintingRatio is the largest share of a fabric that can be printed.
	MaxPrintingRatio = 0.8

	threadDensityFactor = 100 * 2 * 1.08
)

// Output is the result of one stage formula. Impacts never carry composite
// scores; the simulator recomputes them once per stage.
type Output struct {
	Impacts     impact.Vector
	Heat        unit.Energy
	Electricity unit.Energy
}

// Plus returns the sum of two outputs.
func (o Output) Plus(p Output) Output {
	return Output{
		Impacts:     impact.Add(o.Impacts, p.Impacts),
		Heat:        o.Heat.Plus(p.Heat),
		Electricity: o.Electricity.Plus(p.Electricity),
	}
}

// Energy holds the country processes used to turn heat and electricity into
// impacts. Elec is expressed per kWh and Heat per MJ.
type Energy struct {
	Elec catalog.Process
	Heat catalog.Process
}

// Output converts consumed heat and electricity into a stage output.
func (e Energy) Output(heat, elec unit.Energy) Output {
	impacts := impact.Add(
		impact.Scale(e.Heat.Impacts, heat.InMegajoules()),
		impact.Scale(e.Elec.Impacts, elec.InKilowattHours()),
	)
	return Output{Impacts: components(impacts), Heat: heat, Electricity: elec}
}

func perUnit(p catalog.Process, quantity float64) Output {
	return Output{Impacts: components(impact.Scale(p.Impacts, quantity))}
}

// SpinningElectricity returns the electricity needed to spin one kg of yarn
// of the given size. Finer yarns (higher Nm) take more energy.
func SpinningElectricity(method catalog.Spinning, yarn unit.YarnSize) unit.Energy {
	nm := yarn.InKilometersPerKg()
	var kwh float64
	switch method {
	case catalog.SpinningUnconventional:
		kwh = 0.025*nm + 1.2
	case catalog.SpinningSynthetic:
		kwh = 0.01*nm + 1.4
	default:
		kwh = 0.048*nm + 2.2
	}
	return unit.KilowattHours(kwh)
}

// Spinning returns the electricity impacts of spinning mass of fibre.
func Spinning(mass unit.Mass, method catalog.Spinning, yarn unit.YarnSize, energy Energy) Output {
	elec := SpinningElectricity(method, yarn).MultiplyBy(mass.InKilograms())
	return energy.Output(0, elec)
}

// Knitting returns the electricity impacts of knitting mass of fabric.
func Knitting(mass unit.Mass, process catalog.Process, energy Energy) Output {
	return energy.Output(0, process.ElecMJ.MultiplyBy(mass.InKilograms()))
}

// ThreadDensity returns the threads per cm of a woven fabric.
func ThreadDensity(sm unit.SurfaceMass, yarn unit.YarnSize) float64 {
	return sm.InGramsPerSquareMeter() * yarn.InKilometersPerKg() / threadDensityFactor
}

// Picking returns the number of weft insertions needed to weave area.
// The result is rounded to an integer.
func Picking(threadDensity float64, area unit.Area) float64 {
	return math.Round(threadDensity * area.InSquareMeters() * 100)
}

// Weaving returns the electricity impacts of weaving mass of fabric.
func Weaving(mass unit.Mass, sm unit.SurfaceMass, yarn unit.YarnSize, process catalog.Process, energy Energy) Output {
	picks := Picking(ThreadDensity(sm, yarn), sm.Surface(mass))
	return energy.Output(0, unit.KilowattHours(process.ElecPPPM*picks))
}

// Dyeing returns the impacts of dyeing mass of fabric. The weighting is the
// share of the high impact process. The toxicity of untreated effluents is
// scaled by the country's aquatic pollution relative to the average one.
func Dyeing(mass unit.Mass, weighting unit.Ratio, low, high, toxicity catalog.Process,
	aquatic catalog.AquaticPollution, energy Energy,
) Output {
	m := mass.InKilograms()
	w := weighting.Float()
	mix := func(hi, lo float64) float64 { return m * (w*hi + (1-w)*lo) }

	heat := unit.Megajoules(mix(high.HeatMJ.InMegajoules(), low.HeatMJ.InMegajoules()))
	elec := unit.Megajoules(mix(high.ElecMJ.InMegajoules(), low.ElecMJ.InMegajoules()))

	process := impact.Add(impact.Scale(high.Impacts, m*w), impact.Scale(low.Impacts, m*(1-w)))
	out := energy.Output(heat, elec)
	out.Impacts = impact.Add(out.Impacts, components(process))
	return out.Plus(Toxicity(mass, toxicity, aquatic))
}

// Toxicity returns the impacts of chemicals released by a wet process,
// scaled by the aquatic pollution ratio over the average ratio.
func Toxicity(mass unit.Mass, process catalog.Process, aquatic catalog.AquaticPollution) Output {
	return perUnit(process, mass.InKilograms()*aquatic.Ratio()/catalog.AquaticAverage.Ratio())
}

// Bleaching returns the toxicity impacts of bleaching mass of fabric.
func Bleaching(mass unit.Mass, process catalog.Process, aquatic catalog.AquaticPollution) Output {
	return Toxicity(mass, process, aquatic)
}

// PrintedSurface returns the printed area of mass of fabric. The ratio is
// capped at MaxPrintingRatio.
func PrintedSurface(mass unit.Mass, sm unit.SurfaceMass, ratio unit.Ratio) unit.Area {
	r := math.Min(ratio.Float(), MaxPrintingRatio)
	return sm.Surface(mass).MultiplyBy(r)
}

// Printing returns the impacts of printing a share of mass of fabric with a
// process expressed per m².
func Printing(mass unit.Mass, sm unit.SurfaceMass, ratio unit.Ratio, process catalog.Process, energy Energy) Output {
	s := PrintedSurface(mass, sm, ratio).InSquareMeters()
	out := energy.Output(process.HeatMJ.MultiplyBy(s), process.ElecMJ.MultiplyBy(s))
	return out.Plus(perUnit(process, s))
}

// Finishing returns the impacts of finishing mass of fabric.
func Finishing(mass unit.Mass, process catalog.Process, energy Energy) Output {
	m := mass.InKilograms()
	out := energy.Output(process.HeatMJ.MultiplyBy(m), process.ElecMJ.MultiplyBy(m))
	return out.Plus(perUnit(process, m))
}

// Making returns the impacts of assembling one garment of mass. The
// confection electricity is per item and does not depend on mass; a zero
// mass means there is no item. Fading, when not nil, applies to the mass.
func Making(mass unit.Mass, complexity catalog.MakingComplexity, fading *catalog.Process, energy Energy) Output {
	if mass <= 0 {
		return Output{}
	}
	m := mass.InKilograms()
	elec := unit.KilowattHours(complexity.Minutes() * MakingKWhPerMinute)
	var heat unit.Energy
	var fadingImpacts impact.Vector
	if fading != nil {
		elec = elec.Plus(fading.ElecMJ.MultiplyBy(m))
		heat = fading.HeatMJ.MultiplyBy(m)
		fadingImpacts = components(impact.Scale(fading.Impacts, m))
	}
	out := energy.Output(heat, elec)
	out.Impacts = impact.Add(out.Impacts, fadingImpacts)
	return out
}

// Distribution returns the impacts of trucking mass over the distribution
// distance with a process expressed per t·km.
func Distribution(mass unit.Mass, process catalog.Process) Output {
	return perUnit(process, mass.InTonnes()*DistributionDistance)
}

// UseCycles returns the days of wear and the number of washing cycles of a
// garment whose durability scales the product's reference days of wear.
func UseCycles(use catalog.ProductUse, durability float64) (days float64, cycles int) {
	days = math.Round(use.DaysOfWear * durability)
	if use.WearsPerCycle <= 0 {
		return days, 0
	}
	return days, int(math.Round(days / use.WearsPerCycle))
}

// Use returns the impacts of wearing and caring for a garment of mass over
// the given number of cycles. Ironing is per item; washing and drying are
// per kg.
func Use(mass unit.Mass, cycles int, ironing, nonIroning catalog.Process, elec catalog.Process) Output {
	if mass <= 0 || cycles <= 0 {
		return Output{}
	}
	m := mass.InKilograms()
	n := float64(cycles)
	energy := ironing.ElecMJ.Plus(nonIroning.ElecMJ.MultiplyBy(m)).MultiplyBy(n)
	out := Energy{Elec: elec}.Output(0, energy)
	return out.Plus(perUnit(nonIroning, n*m))
}

// EndOfLife returns the impacts of disposing of a garment of mass and
// volume. The trip to the collection point is allocated by the share of a
// car trunk the garment fills.
func EndOfLife(mass unit.Mass, volume unit.Volume, car, eol catalog.Process, energy Energy) Output {
	if mass <= 0 {
		return Output{}
	}
	m := mass.InKilograms()
	ratio := volume.InCubicMeters() / CarTrunkVolume
	out := energy.Output(eol.HeatMJ.MultiplyBy(m), eol.ElecMJ.MultiplyBy(m))
	out = out.Plus(perUnit(car, ratio))
	return out.Plus(perUnit(eol, m))
}
