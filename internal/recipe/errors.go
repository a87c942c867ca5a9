package recipe

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrConstraint matches every *ConstraintError.
var ErrConstraint = constError("recipe constraint violated")

// ConstraintError reports a recipe field outside its domain. Numeric
// violations carry the value and bounds; other violations carry a Reason.
type ConstraintError struct {
	Field  string
	Value  float64
	Min    float64
	Max    float64
	Reason string
}

func (e *ConstraintError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %g is outside [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

// Is makes errors.Is(err, ErrConstraint) hold for every ConstraintError.
func (e *ConstraintError) Is(target error) bool { return target == ErrConstraint }

// Bounds is an inclusive numeric domain.
type Bounds struct {
	Min float64
	Max float64
}

// Check returns a *ConstraintError for field when v is outside b. NaN is
// outside every domain.
func (b Bounds) Check(field string, v float64) error {
	if !(v >= b.Min && v <= b.Max) {
		return &ConstraintError{Field: field, Value: v, Min: b.Min, Max: b.Max}
	}
	return nil
}

// Domains of the recipe parameters.
//
//nolint:gochecknoglobals // Read-only parameter domains.
var (
	MassBounds            = Bounds{Min: 0, Max: 25}
	ShareBounds           = Bounds{Min: 0, Max: 1}
	YarnSizeBounds        = Bounds{Min: 9, Max: 200}
	SurfaceMassBounds     = Bounds{Min: 80, Max: 500}
	DyeingBounds          = Bounds{Min: 0, Max: 1}
	AirTransportBounds    = Bounds{Min: 0, Max: 1}
	MakingWasteBounds     = Bounds{Min: 0, Max: 0.4}
	MakingDeadStockBounds = Bounds{Min: 0, Max: 0.3}
	QualityBounds         = Bounds{Min: 0.67, Max: 1.45}
	ReparabilityBounds    = Bounds{Min: 1, Max: 1.15}
	DurabilityBounds      = Bounds{Min: QualityBounds.Min * ReparabilityBounds.Min, Max: QualityBounds.Max * ReparabilityBounds.Max}
	PrintingBounds        = Bounds{Min: 0, Max: 0.8}
	ElectricityMixBounds  = Bounds{Min: 0, Max: 5}
)
