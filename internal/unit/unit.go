// Package unit provides the typed physical quantities used by the life-cycle
// formulas. Every quantity is a float64 stored in a single canonical unit so
// that conversions happen only at the edges (constructors and In* accessors).
package unit

import "math"

// Conversion constants between the canonical units and the units found in
// process data.
const (
	// MegajoulesPerKWh converts kilowatt-hours to megajoules.
	MegajoulesPerKWh = 3.6

	// KgPerTonne converts tonnes to kilograms.
	KgPerTonne = 1000.0

	// GramsPerKg converts kilograms to grams.
	GramsPerKg = 1000.0
)

// Mass is a mass in kilograms.
type Mass float64

// Kilograms returns a Mass of kg kilograms.
func Kilograms(kg float64) Mass { return Mass(kg) }

// Grams returns a Mass of g grams.
func Grams(g float64) Mass { return Mass(g / GramsPerKg) }

// InKilograms returns the mass in kilograms.
func (m Mass) InKilograms() float64 { return float64(m) }

// InGrams returns the mass in grams.
func (m Mass) InGrams() float64 { return float64(m) * GramsPerKg }

// InTonnes returns the mass in metric tonnes.
func (m Mass) InTonnes() float64 { return float64(m) / KgPerTonne }

// Plus returns m + o.
func (m Mass) Plus(o Mass) Mass { return m + o }

// Minus returns m - o.
func (m Mass) Minus(o Mass) Mass { return m - o }

// MultiplyBy returns m scaled by k.
func (m Mass) MultiplyBy(k float64) Mass { return Mass(float64(m) * k) }

// Energy is an amount of energy in megajoules.
type Energy float64

// Megajoules returns an Energy of mj megajoules.
func Megajoules(mj float64) Energy { return Energy(mj) }

// KilowattHours returns an Energy of kwh kilowatt-hours.
func KilowattHours(kwh float64) Energy { return Energy(kwh * MegajoulesPerKWh) }

// InMegajoules returns the energy in megajoules.
func (e Energy) InMegajoules() float64 { return float64(e) }

// InKilowattHours returns the energy in kilowatt-hours.
func (e Energy) InKilowattHours() float64 { return float64(e) / MegajoulesPerKWh }

// Plus returns e + o.
func (e Energy) Plus(o Energy) Energy { return e + o }

// MultiplyBy returns e scaled by k.
func (e Energy) MultiplyBy(k float64) Energy { return Energy(float64(e) * k) }

// Length is a distance in kilometers.
type Length float64

// Kilometers returns a Length of km kilometers.
func Kilometers(km float64) Length { return Length(km) }

// InKilometers returns the distance in kilometers.
func (l Length) InKilometers() float64 { return float64(l) }

// Plus returns l + o.
func (l Length) Plus(o Length) Length { return l + o }

// MultiplyBy returns l scaled by k.
func (l Length) MultiplyBy(k float64) Length { return Length(float64(l) * k) }

// Area is a surface in square meters.
type Area float64

// SquareMeters returns an Area of m2 square meters.
func SquareMeters(m2 float64) Area { return Area(m2) }

// InSquareMeters returns the area in square meters.
func (a Area) InSquareMeters() float64 { return float64(a) }

// MultiplyBy returns a scaled by k.
func (a Area) MultiplyBy(k float64) Area { return Area(float64(a) * k) }

// Volume is a volume in cubic meters.
type Volume float64

// CubicMeters returns a Volume of m3 cubic meters.
func CubicMeters(m3 float64) Volume { return Volume(m3) }

// InCubicMeters returns the volume in cubic meters.
func (v Volume) InCubicMeters() float64 { return float64(v) }

// SurfaceMass is a fabric grammage in grams per square meter.
type SurfaceMass float64

// GramsPerSquareMeter returns a SurfaceMass of g grams per square meter.
func GramsPerSquareMeter(g float64) SurfaceMass { return SurfaceMass(g) }

// InGramsPerSquareMeter returns the surface mass in g/m².
func (s SurfaceMass) InGramsPerSquareMeter() float64 { return float64(s) }

// Surface returns the fabric area corresponding to mass m at this grammage.
// A zero grammage yields a zero area.
func (s SurfaceMass) Surface(m Mass) Area {
	if s <= 0 {
		return 0
	}
	return Area(m.InGrams() / float64(s))
}

// YarnSize is a yarn count in metric number (Nm), i.e. kilometers of yarn per
// kilogram.
type YarnSize float64

// MetricNumber returns a YarnSize of nm kilometers per kilogram.
func MetricNumber(nm float64) YarnSize { return YarnSize(nm) }

// InKilometersPerKg returns the yarn size in Nm.
func (y YarnSize) InKilometersPerKg() float64 { return float64(y) }

// Ratio is a dimensionless share, normally within [0, 1].
type Ratio float64

// Complement returns 1 - r.
func (r Ratio) Complement() Ratio { return 1 - r }

// Float returns r as a float64.
func (r Ratio) Float() float64 { return float64(r) }

// InPercent returns r expressed in percent.
func (r Ratio) InPercent() float64 { return float64(r) * 100 }

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, decimals int) float64 {
	const base = 10
	m := math.Pow(base, float64(decimals))
	return math.Round(v*m) / m
}
