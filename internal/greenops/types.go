// Package greenops turns the climate change score of a garment into
// everyday equivalents and formats impact values for display.
package greenops

import "fmt"

// EquivalencyType is a category of carbon equivalency.
type EquivalencyType int

const (
	// EquivalencyKilometersDriven is the distance covered by an average
	// passenger car.
	EquivalencyKilometersDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged counts full smartphone charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreeSeedlings counts tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings

	// EquivalencyHomeDays counts days of average home electricity use.
	EquivalencyHomeDays
)

// String returns the name of the equivalency.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyKilometersDriven:
		return "KilometersDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// CarbonInput is an amount of CO2e in some unit.
type CarbonInput struct {
	Value float64 `json:"value"`

	// Unit is one of g, kg, t and their CO2e variants (kgCO2e...).
	Unit string `json:"unit"`
}

// EquivalencyResult is one computed equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formattedValue"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds the equivalencies of one carbon amount.
type EquivalencyOutput struct {
	InputKg float64             `json:"inputKg"`
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose shown under the table, e.g.
	// "Equivalent to driving ~42 km or charging ~609 smartphones".
	DisplayText string `json:"displayText"`

	// CompactText is the short form, e.g. "(≈ 42 km, 609 phones)".
	CompactText string `json:"compactText"`

	IsEmpty bool `json:"isEmpty"`
}
