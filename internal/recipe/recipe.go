package recipe

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/unit"
)

// PrintingKind is the printing technique.
type PrintingKind string

// Printing techniques.
const (
	PrintingPigment     PrintingKind = "pigment"
	PrintingSubstantive PrintingKind = "substantive"
)

// Valid reports whether k is a known technique.
func (k PrintingKind) Valid() bool { return k == PrintingPigment || k == PrintingSubstantive }

// Printing is a print applied on a share of the fabric surface.
type Printing struct {
	Kind  PrintingKind `json:"kind"  yaml:"kind"`
	Ratio unit.Ratio   `json:"ratio" yaml:"ratio"`
}

// MaterialInput is one resolved entry of a blend.
type MaterialInput struct {
	Material      catalog.Material    `json:"material"`
	Share         unit.Ratio          `json:"share"`
	Spinning      catalog.Spinning    `json:"spinning"`
	Country       catalog.CountryCode `json:"country"`
	RecycledRatio unit.Ratio          `json:"recycledRatio"`
	CFF           *catalog.CFF        `json:"cff,omitempty"`
}

// Recipe is a fully resolved and validated description of a garment. Build
// it with Resolve or New; the simulator re-checks it with Validate.
type Recipe struct {
	Mass      unit.Mass       `json:"mass"`
	Materials []MaterialInput `json:"materials"`
	Product   catalog.Product `json:"product"`
	Countries Countries       `json:"countries"`

	DyeingWeighting   unit.Ratio               `json:"dyeingWeighting"`
	AirTransportRatio unit.Ratio               `json:"airTransportRatio"`
	MakingWaste       unit.Ratio               `json:"makingWaste"`
	MakingDeadStock   unit.Ratio               `json:"makingDeadStock"`
	MakingComplexity  catalog.MakingComplexity `json:"makingComplexity"`
	YarnSize          unit.YarnSize            `json:"yarnSize"`
	SurfaceMass       unit.SurfaceMass         `json:"surfaceMass"`
	Fabric            catalog.Fabric           `json:"fabric"`
	Printing          *Printing                `json:"printing,omitempty"`
	Quality           float64                  `json:"quality"`
	Reparability      float64                  `json:"reparability"`
	Durability        float64                  `json:"durability"`
	Fading            bool                     `json:"fading"`
	DisabledSteps     []Step                   `json:"disabledSteps,omitempty"`

	// ElectricityMix replaces the climate change impact, in kg CO2 eq per
	// kWh, of the electricity of a step. Other impacts are kept.
	ElectricityMix map[Step]float64 `json:"electricityMix,omitempty"`
}

// New validates r and returns a copy of it.
func New(r Recipe) (*Recipe, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	out := r
	out.Materials = slices.Clone(r.Materials)
	out.DisabledSteps = slices.Clone(r.DisabledSteps)
	if r.ElectricityMix != nil {
		out.ElectricityMix = make(map[Step]float64, len(r.ElectricityMix))
		for k, v := range r.ElectricityMix {
			out.ElectricityMix[k] = v
		}
	}
	return &out, nil
}

// Enabled reports whether step s is part of the pipeline.
func (r *Recipe) Enabled(s Step) bool { return !slices.Contains(r.DisabledSteps, s) }

// ActiveSteps returns the enabled steps in pipeline order.
func (r *Recipe) ActiveSteps() []Step {
	var out []Step
	for _, s := range Steps() {
		if r.Enabled(s) {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks every constraint of r and returns all violations joined.
//
//nolint:gocognit,funlen // One check per field.
func (r *Recipe) Validate() error {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	invalid := func(field, format string, args ...any) {
		errs = append(errs, &ConstraintError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	check(MassBounds.Check("mass", r.Mass.InKilograms()))
	if r.Mass > 0 && len(r.Materials) == 0 {
		invalid("materials", "at least one material is required for a non-zero mass")
	}
	for i, m := range r.Materials {
		field := fmt.Sprintf("materials[%d]", i)
		if m.Material.ID == "" {
			invalid(field, "material is required")
		}
		check(ShareBounds.Check(field+".share", m.Share.Float()))
		check(ShareBounds.Check(field+".recycledRatio", m.RecycledRatio.Float()))
		if !m.Spinning.Valid() {
			invalid(field+".spinning", "unknown spinning method %q", m.Spinning)
		}
		if m.Country == "" {
			invalid(field+".country", "country is required")
		}
		if m.RecycledRatio > 0 && !m.Material.CanBeRecycled() {
			invalid(field+".recycledRatio", "material %q has no recycled process", m.Material.ID)
		}
		if m.CFF != nil {
			check(ShareBounds.Check(field+".cff.manufacturerAllocation", m.CFF.ManufacturerAllocation.Float()))
			check(ShareBounds.Check(field+".cff.recycledQualityRatio", m.CFF.RecycledQualityRatio.Float()))
		}
	}
	for _, s := range Steps() {
		if r.Countries.For(s) == "" {
			invalid("countries."+string(s), "country is required")
		}
	}

	check(DyeingBounds.Check("dyeingWeighting", r.DyeingWeighting.Float()))
	check(AirTransportBounds.Check("airTransportRatio", r.AirTransportRatio.Float()))
	check(MakingWasteBounds.Check("makingWaste", r.MakingWaste.Float()))
	check(MakingDeadStockBounds.Check("makingDeadStock", r.MakingDeadStock.Float()))
	check(YarnSizeBounds.Check("yarnSize", r.YarnSize.InKilometersPerKg()))
	check(SurfaceMassBounds.Check("surfaceMass", r.SurfaceMass.InGramsPerSquareMeter()))
	check(QualityBounds.Check("quality", r.Quality))
	check(ReparabilityBounds.Check("reparability", r.Reparability))
	check(DurabilityBounds.Check("durability", r.Durability))
	if !r.MakingComplexity.Valid() {
		invalid("makingComplexity", "unknown making complexity %q", r.MakingComplexity)
	}
	if !r.Fabric.Valid() {
		invalid("fabric", "unknown fabric %q", r.Fabric)
	}
	if r.Printing != nil {
		if !r.Printing.Kind.Valid() {
			invalid("printing.kind", "unknown printing %q", r.Printing.Kind)
		}
		check(PrintingBounds.Check("printing.ratio", r.Printing.Ratio.Float()))
	}
	for _, s := range r.DisabledSteps {
		if !s.Valid() {
			invalid("disabledSteps", "unknown step %q", s)
		}
	}
	for s, v := range r.ElectricityMix {
		if !s.HasElectricityMix() {
			invalid("electricityMix", "no electricity mix for step %q", s)
			continue
		}
		check(ElectricityMixBounds.Check("electricityMix."+string(s), v))
	}
	return errors.Join(errs...)
}
