package impact

import (
	"encoding/json"
	"fmt"
)

// Vector holds one quantity per impact Code. It is a value type: every
// operation returns a new Vector and never mutates its arguments, and the zero
// value is the all-zero vector.
type Vector [NumCodes]float64

// Zero returns a Vector with every code mapped to 0.
func Zero() Vector { return Vector{} }

// Get returns the quantity for code c.
func (v Vector) Get(c Code) float64 { return v[c] }

// Add returns the codewise sum a + b.
func Add(a, b Vector) Vector {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Sum returns the codewise sum of all vectors. Sum() is Zero().
func Sum(vs ...Vector) Vector {
	var total Vector
	for _, v := range vs {
		total = Add(total, v)
	}
	return total
}

// Map applies f to every code of v.
func Map(v Vector, f func(c Code, value float64) float64) Vector {
	for i := range v {
		v[i] = f(Code(i), v[i])
	}
	return v
}

// Scale returns v with every component multiplied by k.
func Scale(v Vector, k float64) Vector {
	for i := range v {
		v[i] *= k
	}
	return v
}

// Filter returns v with every code not matching keep set to 0.
func Filter(v Vector, keep func(c Code) bool) Vector {
	for i := range v {
		if !keep(Code(i)) {
			v[i] = 0
		}
	}
	return v
}

// PerKg divides every component of v by mass in kilograms.
func PerKg(v Vector, kg float64) (Vector, error) {
	if kg <= 0 {
		return Vector{}, fmt.Errorf("%w: %g kg", ErrZeroMass, kg)
	}
	return Scale(v, 1/kg), nil
}

// IsZero reports whether every component of v is exactly 0.
func (v Vector) IsZero() bool {
	return v == Vector{}
}

// MarshalJSON encodes v as an object keyed by trigram.
func (v Vector) MarshalJSON() ([]byte, error) {
	m := make(map[Code]float64, NumCodes)
	for i, value := range v {
		m[Code(i)] = value
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object keyed by trigram. Absent codes are 0 and
// unknown trigrams are rejected.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var m map[Code]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*v = Vector{}
	for c, value := range m {
		v[c] = value
	}
	return nil
}
