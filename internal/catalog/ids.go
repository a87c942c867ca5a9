package catalog

// ProcessID is the identifier (a UUID in the reference data) of a Process.
type ProcessID string

// Alias is the well-known name under which the engine looks up a Process it
// needs unconditionally, such as "seaTransport".
type Alias string

// MaterialID identifies a Material, e.g. "ei-coton".
type MaterialID string

// ProductID identifies a product category, e.g. "tshirt".
type ProductID string

// CountryCode is an ISO 3166-1 alpha-2 country code, e.g. "FR".
type CountryCode string

// ProcessUnit is the functional unit a Process's impacts are expressed per.
type ProcessUnit string

// Functional units found in process data.
const (
	UnitKg          ProcessUnit = "kg"
	UnitKWh         ProcessUnit = "kWh"
	UnitMJ          ProcessUnit = "MJ"
	UnitTonneKm     ProcessUnit = "t*km"
	UnitItem        ProcessUnit = "item"
	UnitSquareMeter ProcessUnit = "m2"
)

// Valid reports whether u is a known functional unit.
func (u ProcessUnit) Valid() bool {
	switch u {
	case UnitKg, UnitKWh, UnitMJ, UnitTonneKm, UnitItem, UnitSquareMeter:
		return true
	default:
		return false
	}
}

// Origin classifies where a material's fibre comes from.
type Origin string

// Material origins.
const (
	OriginNaturalVegetal      Origin = "natural-from-vegetal"
	OriginNaturalAnimal       Origin = "natural-from-animal"
	OriginArtificialOrganic   Origin = "artificial-from-organic"
	OriginArtificialInorganic Origin = "artificial-from-inorganic"
	OriginSynthetic           Origin = "synthetic"
)

// Valid reports whether o is a known origin.
func (o Origin) Valid() bool {
	switch o {
	case OriginNaturalVegetal, OriginNaturalAnimal, OriginArtificialOrganic,
		OriginArtificialInorganic, OriginSynthetic:
		return true
	default:
		return false
	}
}

// Spinning is the yarn production method.
type Spinning string

// Spinning methods.
const (
	SpinningConventional   Spinning = "conventional"
	SpinningUnconventional Spinning = "unconventional"
	SpinningSynthetic      Spinning = "synthetic"
)

// Valid reports whether s is a known spinning method.
func (s Spinning) Valid() bool {
	switch s {
	case SpinningConventional, SpinningUnconventional, SpinningSynthetic:
		return true
	default:
		return false
	}
}

// Fabric is the fabric-forming technique of a product.
type Fabric string

// Fabric techniques.
const (
	FabricWeaving                Fabric = "weaving"
	FabricKnittingMix            Fabric = "knitting-mix"
	FabricKnittingCircular       Fabric = "knitting-circular"
	FabricKnittingStraight       Fabric = "knitting-straight"
	FabricKnittingIntegral       Fabric = "knitting-integral"
	FabricKnittingFullyFashioned Fabric = "knitting-fully-fashioned"
)

// Valid reports whether f is a known technique.
func (f Fabric) Valid() bool {
	switch f {
	case FabricWeaving, FabricKnittingMix, FabricKnittingCircular, FabricKnittingStraight,
		FabricKnittingIntegral, FabricKnittingFullyFashioned:
		return true
	default:
		return false
	}
}

// IsKnitted reports whether f is one of the knitting techniques.
func (f Fabric) IsKnitted() bool { return f.Valid() && f != FabricWeaving }

// MakingComplexity grades the confection effort of a garment.
type MakingComplexity string

// Making complexities, from the most to the least demanding.
const (
	ComplexityVeryHigh      MakingComplexity = "very-high"
	ComplexityHigh          MakingComplexity = "high"
	ComplexityMedium        MakingComplexity = "medium"
	ComplexityLow           MakingComplexity = "low"
	ComplexityVeryLow       MakingComplexity = "very-low"
	ComplexityNotApplicable MakingComplexity = "not-applicable"
)

// Minutes returns the confection time of one item. Unknown values return 0.
func (c MakingComplexity) Minutes() float64 {
	switch c {
	case ComplexityVeryHigh:
		return 240
	case ComplexityHigh:
		return 120
	case ComplexityMedium:
		return 60
	case ComplexityLow:
		return 30
	case ComplexityVeryLow:
		return 15
	default:
		return 0
	}
}

// Valid reports whether c is a known complexity.
func (c MakingComplexity) Valid() bool {
	return c == ComplexityNotApplicable || c.Minutes() > 0
}

// AquaticPollution is the wastewater treatment scenario of a country.
type AquaticPollution string

// Aquatic pollution scenarios.
const (
	AquaticBest    AquaticPollution = "best"
	AquaticAverage AquaticPollution = "average"
	AquaticWorst   AquaticPollution = "worst"
)

// Ratio returns the share of untreated chemicals released to water.
// Unknown scenarios fall back to the average ratio.
func (a AquaticPollution) Ratio() float64 {
	switch a {
	case AquaticBest:
		return 0.06
	case AquaticWorst:
		return 0.65
	default:
		return 0.36
	}
}

// Valid reports whether a is a known scenario.
func (a AquaticPollution) Valid() bool {
	return a == AquaticBest || a == AquaticAverage || a == AquaticWorst
}
