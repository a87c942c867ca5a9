package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is.
var (
	// ErrInvalidUnit is returned for an unknown carbon unit.
	ErrInvalidUnit = constError("invalid carbon unit")

	// ErrNegativeValue is returned for a negative carbon amount.
	ErrNegativeValue = constError("negative carbon value")

	// ErrCalculationOverflow is returned for infinite or NaN amounts.
	ErrCalculationOverflow = constError("calculation overflow")
)
