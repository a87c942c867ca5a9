package recipe

import (
	"fmt"

	"github.com/rshade/ecofocus/internal/catalog"
)

// Step is one life-cycle stage.
type Step string

// Life-cycle steps, in pipeline order.
const (
	StepSpinning     Step = "spinning"
	StepFabric       Step = "fabric"
	StepEnnobling    Step = "ennobling"
	StepMaking       Step = "making"
	StepDistribution Step = "distribution"
	StepUse          Step = "use"
	StepEndOfLife    Step = "end-of-life"
)

// Steps returns every step in pipeline order.
func Steps() []Step {
	return []Step{StepSpinning, StepFabric, StepEnnobling, StepMaking, StepDistribution, StepUse, StepEndOfLife}
}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	for _, known := range Steps() {
		if s == known {
			return true
		}
	}
	return false
}

// Editable reports whether the user may choose the country of s.
func (s Step) Editable() bool {
	switch s {
	case StepFabric, StepEnnobling, StepMaking:
		return true
	default:
		return false
	}
}

// HasElectricityMix reports whether a custom electricity mix can be set for s.
func (s Step) HasElectricityMix() bool { return s.Editable() }

// ParseStep returns the step named name.
func ParseStep(name string) (Step, error) {
	s := Step(name)
	if !s.Valid() {
		return "", &ConstraintError{Field: "step", Reason: fmt.Sprintf("unknown step %q", name)}
	}
	return s, nil
}

// Countries is the country of each step.
type Countries struct {
	Spinning     catalog.CountryCode `json:"spinning"     yaml:"spinning"`
	Fabric       catalog.CountryCode `json:"fabric"       yaml:"fabric"`
	Ennobling    catalog.CountryCode `json:"ennobling"    yaml:"ennobling"`
	Making       catalog.CountryCode `json:"making"       yaml:"making"`
	Distribution catalog.CountryCode `json:"distribution" yaml:"distribution"`
	Use          catalog.CountryCode `json:"use"          yaml:"use"`
	EndOfLife    catalog.CountryCode `json:"endOfLife"    yaml:"endOfLife"`
}

// For returns the country of step s.
func (c Countries) For(s Step) catalog.CountryCode {
	switch s {
	case StepSpinning:
		return c.Spinning
	case StepFabric:
		return c.Fabric
	case StepEnnobling:
		return c.Ennobling
	case StepMaking:
		return c.Making
	case StepDistribution:
		return c.Distribution
	case StepUse:
		return c.Use
	case StepEndOfLife:
		return c.EndOfLife
	default:
		return ""
	}
}
