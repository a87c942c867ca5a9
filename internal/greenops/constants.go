package greenops

// Equivalency factors in kg CO2e per unit of activity, from the EPA
// greenhouse gas equivalencies calculator (2024), converted to metric:
//
//	equivalency = kg_CO2e / factor
const (
	// KilometerDrivenFactor is kg CO2e per km of an average passenger car
	// (0.192 kg per mile).
	KilometerDrivenFactor = 0.1193

	SmartphoneChargeFactor = 0.00822

	// TreeSeedlingFactor is kg CO2e absorbed by one seedling over 10 years.
	TreeSeedlingFactor = 60.0

	HomeDayFactor = 18.3
)

// Unit conversion factors to kilograms.
const (
	GramsToKg = 0.001
	KgToKg    = 1.0
	TonsToKg  = 1000.0
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest amount worth an
	// equivalency. A t-shirt is typically a few kg CO2e.
	MinEquivalencyThresholdKg = 0.1

	// TreeThresholdKg is the amount from which tree seedlings are listed.
	TreeThresholdKg = TreeSeedlingFactor

	LargeNumberThreshold = 1_000_000
	BillionThreshold     = 1_000_000_000
)
