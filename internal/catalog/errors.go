package catalog

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors of the catalog.
var (
	// ErrNotFound matches every *LookupError.
	ErrNotFound = constError("not found")

	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = constError("invalid catalog configuration")
)

// Kind names the table a lookup was made against.
type Kind string

// Lookup kinds.
const (
	KindProcess    Kind = "process"
	KindAlias      Kind = "process alias"
	KindMaterial   Kind = "material"
	KindProduct    Kind = "product"
	KindCountry    Kind = "country"
	KindDefinition Kind = "impact definition"
	KindDistance   Kind = "distance"
)

// LookupError reports that Key could not be found in the Kind table.
type LookupError struct {
	Kind Kind
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.Key)
}

// Is makes errors.Is(err, ErrNotFound) hold for every LookupError.
func (e *LookupError) Is(target error) bool { return target == ErrNotFound }

func notFound(kind Kind, key string) error {
	return &LookupError{Kind: kind, Key: key}
}

// ConfigurationError reports reference data the engine cannot run with. It is
// only returned while building a Snapshot, never per request.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("catalog configuration: %s", e.Reason)
	}
	return fmt.Sprintf("catalog configuration: %s: %v", e.Reason, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConfiguration) hold for every ConfigurationError.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func configError(err error, format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...), Err: err}
}
