package impact

import (
	"fmt"

	"github.com/rshade/ecofocus/internal/unit"
)

// Scope is a domain an impact definition applies to.
type Scope string

// Known scopes.
const (
	ScopeTextile Scope = "textile"
	ScopeFood    Scope = "food"
)

// Quality rates the robustness of an impact category.
type Quality int

// Quality levels as published with the EF method.
const (
	QualityNotApplicable Quality = iota
	QualityRecommended
	QualityRecommendedWithCaution
	QualityExperimental
)

// Weighting holds the coefficients used to fold a component into a composite.
// Normalization is the multiplicative factor (the inverse of the normalization
// reference), so that a component contributes value × Normalization × Weighting.
type Weighting struct {
	Normalization float64 `json:"normalization" yaml:"normalization"`
	Weighting     float64 `json:"weighting"     yaml:"weighting"`
}

// EcoscoreData is the Ecoscore weighting of a component plus its display color.
// It carries the same coefficients as Weighting, flattened next to the color.
type EcoscoreData struct {
	Normalization float64 `json:"normalization"   yaml:"normalization"`
	Weighting     float64 `json:"weighting"       yaml:"weighting"`
	Color         string  `json:"color,omitempty" yaml:"color,omitempty"`
}

// Definition describes one impact category.
type Definition struct {
	Code        Code          `json:"trigram"                yaml:"trigram"`
	Label       string        `json:"label"                  yaml:"label"`
	Description string        `json:"description,omitempty"  yaml:"description,omitempty"`
	Unit        string        `json:"unit"                   yaml:"unit"`
	Decimals    int           `json:"decimals"               yaml:"decimals"`
	Quality     Quality       `json:"quality"                yaml:"quality"`
	PEF         *Weighting    `json:"pefData,omitempty"      yaml:"pefData,omitempty"`
	Ecoscore    *EcoscoreData `json:"ecoscoreData,omitempty" yaml:"ecoscoreData,omitempty"`
	Scopes      []Scope       `json:"scopes"                 yaml:"scopes"`
}

// InScope reports whether d applies to scope s.
func (d Definition) InScope(s Scope) bool {
	for _, scope := range d.Scopes {
		if scope == s {
			return true
		}
	}
	return false
}

// Round rounds value to the definition's display precision.
func (d Definition) Round(value float64) float64 {
	return unit.RoundTo(value, d.Decimals)
}

// Definitions is a complete, immutable set of impact definitions, one per Code.
type Definitions struct {
	byCode [NumCodes]Definition
}

// NewDefinitions builds a Definitions set. Every Code must be defined exactly once.
func NewDefinitions(list []Definition) (*Definitions, error) {
	var (
		defs Definitions
		seen [NumCodes]bool
	)
	for _, d := range list {
		if !d.Code.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCode, int(d.Code))
		}
		if seen[d.Code] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDefinition, d.Code)
		}
		seen[d.Code] = true
		defs.byCode[d.Code] = d
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingDefinition, Code(i))
		}
	}
	return &defs, nil
}

// Get returns the definition of c.
func (d *Definitions) Get(c Code) Definition { return d.byCode[c] }

// All returns every definition in Code order.
func (d *Definitions) All() []Definition {
	out := make([]Definition, NumCodes)
	copy(out, d.byCode[:])
	return out
}

// ForScope returns the definitions applying to scope s, in Code order.
func (d *Definitions) ForScope(s Scope) []Definition {
	var out []Definition
	for _, def := range d.byCode {
		if def.InScope(s) {
			out = append(out, def)
		}
	}
	return out
}
