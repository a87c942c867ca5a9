package impact

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors of the impact algebra.
var (
	// ErrUnknownCode indicates a trigram that is not part of the Code set.
	ErrUnknownCode = constError("unknown impact code")

	// ErrZeroMass indicates a per-kilogram normalization by a non-positive mass.
	ErrZeroMass = constError("cannot normalize impacts by a zero mass")

	// ErrMissingDefinition indicates a Definitions set that does not cover every Code.
	ErrMissingDefinition = constError("missing impact definition")

	// ErrDuplicateDefinition indicates two definitions for the same Code.
	ErrDuplicateDefinition = constError("duplicate impact definition")
)
