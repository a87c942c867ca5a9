package impact

// Recompute returns v with the PEF and Ecoscore composites replaced by their
// weighted sums over the non-composite components:
//
//	composite = Σ value(c) × normalization(c) × weighting(c)
//
// Components without coefficients for a composite contribute nothing to it.
// Recompute is the only place composite values are produced.
func Recompute(v Vector, defs *Definitions) Vector {
	var pef, ecs float64
	for i := range v {
		c := Code(i)
		if c.IsComposite() {
			continue
		}
		def := defs.Get(c)
		if def.PEF != nil {
			pef += v[i] * def.PEF.Normalization * def.PEF.Weighting
		}
		if def.Ecoscore != nil {
			ecs += v[i] * def.Ecoscore.Normalization * def.Ecoscore.Weighting
		}
	}
	v[Pef] = pef
	v[Ecs] = ecs
	return v
}

// Update returns v with code c set to value and both composites recomputed.
// Setting a composite directly is ignored since it is always derived.
func Update(v Vector, defs *Definitions, c Code, value float64) Vector {
	if !c.IsComposite() {
		v[c] = value
	}
	return Recompute(v, defs)
}

// Complements are the bonuses granted on top of the EF impacts. They are
// tracked apart from the Vector and only ever deducted from the Ecoscore.
type Complements struct {
	AgroDiversity float64 `json:"agroDiversity" yaml:"agroDiversity"`
	AgroEcology   float64 `json:"agroEcology"   yaml:"agroEcology"`
	AnimalWelfare float64 `json:"animalWelfare" yaml:"animalWelfare"`
}

// Total returns the sum of all bonuses.
func (c Complements) Total() float64 {
	return c.AgroDiversity + c.AgroEcology + c.AnimalWelfare
}

// Add returns the fieldwise sum of c and o.
func (c Complements) Add(o Complements) Complements {
	return Complements{
		AgroDiversity: c.AgroDiversity + o.AgroDiversity,
		AgroEcology:   c.AgroEcology + o.AgroEcology,
		AnimalWelfare: c.AnimalWelfare + o.AnimalWelfare,
	}
}

// ApplyComplements deducts the bonuses from the Ecoscore of v. It must be
// applied after Recompute; recomputing afterwards discards the deduction.
func ApplyComplements(v Vector, c Complements) Vector {
	v[Ecs] -= c.Total()
	return v
}
