package recipe

import (
	"fmt"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/unit"
)

// DefaultCountry is the country of distribution, use and end of life when a
// query does not set them, and of spinning for an empty blend.
const DefaultCountry catalog.CountryCode = "FR"

// Catalog is the part of a catalog snapshot a query is resolved against.
type Catalog interface {
	Material(id catalog.MaterialID) (catalog.Material, error)
	Product(id catalog.ProductID) (catalog.Product, error)
	Country(code catalog.CountryCode) (catalog.Country, error)
}

// Resolve turns q into a validated Recipe, filling every unset field with
// its default. Unknown identifiers return a *catalog.LookupError and
// out-of-domain values a *ConstraintError.
//
//nolint:funlen // Defaults are applied field by field.
func Resolve(db Catalog, q Query) (*Recipe, error) {
	product, err := db.Product(q.Product)
	if err != nil {
		return nil, fmt.Errorf("resolving product: %w", err)
	}

	r := Recipe{
		Mass:             orFloat(q.Mass, product.Mass),
		Product:          product,
		MakingWaste:      orFloat(q.MakingWaste, product.MakingWaste),
		MakingDeadStock:  orFloat(q.MakingDeadStock, product.MakingDeadStock),
		MakingComplexity: orDefault(q.MakingComplexity, product.MakingComplexity),
		YarnSize:         orFloat(q.YarnSize, product.YarnSize),
		SurfaceMass:      orFloat(q.SurfaceMass, product.SurfaceMass),
		Fabric:           orDefault(q.Fabric, product.Fabric),
		Fading:           orDefault(q.Fading, product.Fading),
		Quality:          orDefault(q.Quality, 1.0),
		Reparability:     orDefault(q.Reparability, 1.0),
		Printing:         q.Printing,
		DisabledSteps:    q.DisabledSteps,
		ElectricityMix:   q.ElectricityMix,
	}
	r.Durability = orDefault(q.Durability, r.Quality*r.Reparability)

	for i, mq := range q.Materials {
		input, err := resolveMaterial(db, mq)
		if err != nil {
			return nil, fmt.Errorf("resolving materials[%d]: %w", i, err)
		}
		r.Materials = append(r.Materials, input)
	}

	spinning := DefaultCountry
	if len(r.Materials) > 0 {
		spinning = r.Materials[0].Country
	}
	r.Countries.Spinning = orDefault(q.CountrySpinning, spinning)
	r.Countries.Fabric = orDefault(q.CountryFabric, r.Countries.Spinning)
	r.Countries.Ennobling = orDefault(q.CountryDyeing, r.Countries.Fabric)
	r.Countries.Making = orDefault(q.CountryMaking, r.Countries.Ennobling)
	r.Countries.Distribution = orDefault(q.CountryDistribution, DefaultCountry)
	r.Countries.Use = orDefault(q.CountryUse, DefaultCountry)
	r.Countries.EndOfLife = orDefault(q.CountryEndOfLife, DefaultCountry)

	for _, s := range Steps() {
		if _, err := db.Country(r.Countries.For(s)); err != nil {
			return nil, fmt.Errorf("resolving %s country: %w", s, err)
		}
	}
	dyeing, _ := db.Country(r.Countries.Ennobling)
	making, _ := db.Country(r.Countries.Making)
	r.DyeingWeighting = orFloat(q.DyeingWeighting, dyeing.DyeingWeighting)
	r.AirTransportRatio = orFloat(q.AirTransportRatio, making.AirTransportRatio)

	return New(r)
}

func resolveMaterial(db Catalog, mq MaterialQuery) (MaterialInput, error) {
	m, err := db.Material(mq.ID)
	if err != nil {
		return MaterialInput{}, err
	}
	country := orDefault(mq.Country, m.DefaultCountry)
	if _, err := db.Country(country); err != nil {
		return MaterialInput{}, err
	}
	input := MaterialInput{
		Material:      m,
		Share:         unit.Ratio(mq.Share),
		Spinning:      orDefault(mq.Spinning, m.DefaultSpinning()),
		Country:       country,
		RecycledRatio: orFloat(mq.RecycledRatio, unit.Ratio(0)),
		CFF:           m.CFF,
	}
	if mq.CFF != nil {
		cff := *mq.CFF
		input.CFF = &cff
	}
	return input, nil
}

// orDefault returns *v, or def when v is nil.
func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// orFloat returns *v as a T quantity, or def when v is nil.
func orFloat[T ~float64](v *float64, def T) T {
	if v == nil {
		return def
	}
	return T(*v)
}
