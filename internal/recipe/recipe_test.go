package recipe_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/recipe"
)

func snapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	db, err := catalog.Default()
	require.NoError(t, err)
	return db
}

func ptr[T any](v T) *T { return &v }

func cottonTshirt() recipe.Query {
	return recipe.Query{
		Product:   "tshirt",
		Materials: []recipe.MaterialQuery{{ID: "ei-coton", Share: 1}},
	}
}

func TestResolveDefaults(t *testing.T) {
	db := snapshot(t)
	product, err := db.Product("tshirt")
	require.NoError(t, err)

	r, err := recipe.Resolve(db, cottonTshirt())
	require.NoError(t, err)

	assert.Equal(t, product.Mass, r.Mass)
	assert.Equal(t, product.Fabric, r.Fabric)
	assert.Equal(t, product.MakingComplexity, r.MakingComplexity)
	assert.InDelta(t, 1.0, r.Durability, 1e-12)

	require.Len(t, r.Materials, 1)
	cotton := r.Materials[0]
	assert.Equal(t, catalog.CountryCode("IN"), cotton.Country)
	assert.Equal(t, catalog.SpinningConventional, cotton.Spinning)
	assert.Zero(t, cotton.RecycledRatio)

	assert.Equal(t, catalog.CountryCode("IN"), r.Countries.Spinning)
	assert.Equal(t, catalog.CountryCode("IN"), r.Countries.Making)
	assert.Equal(t, recipe.DefaultCountry, r.Countries.Distribution)
	assert.Equal(t, recipe.DefaultCountry, r.Countries.EndOfLife)

	india, err := db.Country("IN")
	require.NoError(t, err)
	assert.Equal(t, india.DyeingWeighting, r.DyeingWeighting)
	assert.Equal(t, india.AirTransportRatio, r.AirTransportRatio)
	assert.Equal(t, recipe.Steps(), r.ActiveSteps())
}

func TestResolveOverrides(t *testing.T) {
	q := cottonTshirt()
	q.Mass = ptr(0.2)
	q.CountryMaking = ptr(catalog.CountryCode("PT"))
	q.AirTransportRatio = ptr(0.5)
	q.Quality = ptr(1.2)
	q.Reparability = ptr(1.1)
	q.DisabledSteps = []recipe.Step{recipe.StepUse}
	q.Materials[0].RecycledRatio = ptr(0.3)
	q.Materials[0].CFF = &catalog.CFF{ManufacturerAllocation: 1, RecycledQualityRatio: 1}

	r, err := recipe.Resolve(snapshot(t), q)
	require.NoError(t, err)

	assert.InDelta(t, 0.2, r.Mass.InKilograms(), 1e-12)
	assert.Equal(t, catalog.CountryCode("PT"), r.Countries.Making)
	assert.InDelta(t, 0.5, r.AirTransportRatio.Float(), 1e-12)
	assert.InDelta(t, 1.32, r.Durability, 1e-12)
	assert.False(t, r.Enabled(recipe.StepUse))
	assert.NotContains(t, r.ActiveSteps(), recipe.StepUse)
	assert.InDelta(t, 1.0, r.Materials[0].CFF.ManufacturerAllocation.Float(), 1e-12)
}

func TestResolveLookupErrors(t *testing.T) {
	db := snapshot(t)

	tests := []struct {
		name   string
		mutate func(*recipe.Query)
	}{
		{"unknown product", func(q *recipe.Query) { q.Product = "cape" }},
		{"unknown material", func(q *recipe.Query) { q.Materials[0].ID = "ei-kevlar" }},
		{"unknown material country", func(q *recipe.Query) { q.Materials[0].Country = ptr(catalog.CountryCode("XX")) }},
		{"unknown stage country", func(q *recipe.Query) { q.CountryUse = ptr(catalog.CountryCode("XX")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := cottonTshirt()
			tt.mutate(&q)
			r, err := recipe.Resolve(db, q)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, catalog.ErrNotFound)
		})
	}
}

func TestResolveConstraintErrors(t *testing.T) {
	db := snapshot(t)

	tests := []struct {
		name   string
		mutate func(*recipe.Query)
		field  string
	}{
		{"air ratio above one", func(q *recipe.Query) { q.AirTransportRatio = ptr(1.5) }, "airTransportRatio"},
		{"negative dyeing", func(q *recipe.Query) { q.DyeingWeighting = ptr(-0.1) }, "dyeingWeighting"},
		{"making waste", func(q *recipe.Query) { q.MakingWaste = ptr(0.5) }, "makingWaste"},
		{"dead stock", func(q *recipe.Query) { q.MakingDeadStock = ptr(0.31) }, "makingDeadStock"},
		{"yarn size", func(q *recipe.Query) { q.YarnSize = ptr(5.0) }, "yarnSize"},
		{"surface mass", func(q *recipe.Query) { q.SurfaceMass = ptr(600.0) }, "surfaceMass"},
		{"quality", func(q *recipe.Query) { q.Quality = ptr(2.0) }, "quality"},
		{"reparability", func(q *recipe.Query) { q.Reparability = ptr(0.9) }, "reparability"},
		{"share", func(q *recipe.Query) { q.Materials[0].Share = 1.2 }, "materials[0].share"},
		{"negative mass", func(q *recipe.Query) { q.Mass = ptr(-1.0) }, "mass"},
		{"nan mass", func(q *recipe.Query) { q.Mass = ptr(math.NaN()) }, "mass"},
		{"infinite yarn size", func(q *recipe.Query) { q.YarnSize = ptr(math.Inf(1)) }, "yarnSize"},
		{"printing ratio", func(q *recipe.Query) {
			q.Printing = &recipe.Printing{Kind: recipe.PrintingPigment, Ratio: 0.9}
		}, "printing.ratio"},
		{"printing kind", func(q *recipe.Query) {
			q.Printing = &recipe.Printing{Kind: "screen", Ratio: 0.1}
		}, "printing.kind"},
		{"fabric", func(q *recipe.Query) { q.Fabric = ptr(catalog.Fabric("felting")) }, "fabric"},
		{"recycled ratio on non recyclable", func(q *recipe.Query) {
			q.Materials[0].ID = "ei-laine"
			q.Materials[0].RecycledRatio = ptr(0.5)
		}, "materials[0].recycledRatio"},
		{"disabled step", func(q *recipe.Query) { q.DisabledSteps = []recipe.Step{"dyeing"} }, "disabledSteps"},
		{"electricity mix step", func(q *recipe.Query) {
			q.ElectricityMix = map[recipe.Step]float64{recipe.StepUse: 0.1}
		}, "electricityMix"},
		{"electricity mix value", func(q *recipe.Query) {
			q.ElectricityMix = map[recipe.Step]float64{recipe.StepMaking: -1}
		}, "electricityMix.making"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := cottonTshirt()
			tt.mutate(&q)
			r, err := recipe.Resolve(db, q)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, recipe.ErrConstraint)

			var cErr *recipe.ConstraintError
			require.ErrorAs(t, err, &cErr)
			assert.Equal(t, tt.field, cErr.Field)
		})
	}
}

func TestResolveRejectsNaNFromYAML(t *testing.T) {
	db := snapshot(t)

	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "making waste",
			doc:   "product: tshirt\nmaterials: [{id: ei-coton, share: 1}]\nmakingWaste: .nan\n",
			field: "makingWaste",
		},
		{
			name:  "share",
			doc:   "product: tshirt\nmaterials: [{id: ei-coton, share: .nan}]\n",
			field: "materials[0].share",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := recipe.ParseQuery([]byte(tt.doc))
			require.NoError(t, err)

			r, err := recipe.Resolve(db, q)
			require.ErrorIs(t, err, recipe.ErrConstraint)
			assert.Nil(t, r)

			var cErr *recipe.ConstraintError
			require.ErrorAs(t, err, &cErr)
			assert.Equal(t, tt.field, cErr.Field)
		})
	}
}

func TestBoundsCheckRejectsNaN(t *testing.T) {
	err := recipe.ShareBounds.Check("share", math.NaN())
	require.ErrorIs(t, err, recipe.ErrConstraint)
	assert.NoError(t, recipe.ShareBounds.Check("share", 0))
}

func TestConstraintErrorMessage(t *testing.T) {
	err := recipe.AirTransportBounds.Check("airTransportRatio", 2)
	require.Error(t, err)
	assert.Equal(t, "airTransportRatio: 2 is outside [0, 1]", err.Error())
	assert.NoError(t, recipe.AirTransportBounds.Check("airTransportRatio", 1))
}

func TestValidateCatchesHandBuiltRecipes(t *testing.T) {
	r, err := recipe.Resolve(snapshot(t), cottonTshirt())
	require.NoError(t, err)

	broken := *r
	broken.MakingWaste = 0.9
	_, err = recipe.New(broken)
	assert.ErrorIs(t, err, recipe.ErrConstraint)

	missing := *r
	missing.Countries.Use = ""
	assert.ErrorIs(t, missing.Validate(), recipe.ErrConstraint)

	empty := *r
	empty.Materials = nil
	assert.ErrorIs(t, empty.Validate(), recipe.ErrConstraint)
	empty.Mass = 0
	assert.NoError(t, empty.Validate())
}

func TestNewCopiesSlices(t *testing.T) {
	r, err := recipe.Resolve(snapshot(t), cottonTshirt())
	require.NoError(t, err)

	c, err := recipe.New(*r)
	require.NoError(t, err)
	c.Materials[0].Share = 0.5
	assert.InDelta(t, 1.0, r.Materials[0].Share.Float(), 1e-12)
}

func TestParseQuery(t *testing.T) {
	yamlDoc := `
product: jean
mass: 0.45
materials:
  - id: ei-coton
    share: 0.98
    recycledRatio: 0.2
  - id: ei-elasthane
    share: 0.02
countryMaking: TN
fading: true
printing:
  kind: pigment
  ratio: 0.2
disabledSteps: [use]
electricityMix:
  making: 0.3
`
	q, err := recipe.ParseQuery([]byte(yamlDoc))
	require.NoError(t, err)
	assert.Equal(t, catalog.ProductID("jean"), q.Product)
	require.Len(t, q.Materials, 2)
	require.NotNil(t, q.Materials[0].RecycledRatio)
	assert.InDelta(t, 0.2, *q.Materials[0].RecycledRatio, 1e-12)
	require.NotNil(t, q.CountryMaking)
	assert.Equal(t, catalog.CountryCode("TN"), *q.CountryMaking)
	assert.InDelta(t, 0.3, q.ElectricityMix[recipe.StepMaking], 1e-12)

	jsonDoc := `{"product":"jean","mass":0.45,"materials":[{"id":"ei-coton","share":1}]}`
	fromJSON, err := recipe.ParseQuery([]byte(jsonDoc))
	require.NoError(t, err)
	assert.InDelta(t, 0.45, *fromJSON.Mass, 1e-12)

	_, err = recipe.ParseQuery([]byte("materials: [oops"))
	assert.Error(t, err)

	r, err := recipe.Resolve(snapshot(t), q)
	require.NoError(t, err)
	assert.True(t, r.Fading)
	assert.Equal(t, recipe.PrintingPigment, r.Printing.Kind)
}

func TestQueryKey(t *testing.T) {
	a, err := cottonTshirt().Key()
	require.NoError(t, err)
	b, err := cottonTshirt().Key()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	other := cottonTshirt()
	other.Mass = ptr(0.3)
	c, err := other.Key()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestSteps(t *testing.T) {
	s, err := recipe.ParseStep("end-of-life")
	require.NoError(t, err)
	assert.Equal(t, recipe.StepEndOfLife, s)
	_, err = recipe.ParseStep("dyeing")
	assert.ErrorIs(t, err, recipe.ErrConstraint)
	assert.True(t, recipe.StepMaking.Editable())
	assert.False(t, recipe.StepUse.Editable())

	c := recipe.Countries{Spinning: "CN", EndOfLife: "FR"}
	assert.Equal(t, catalog.CountryCode("CN"), c.For(recipe.StepSpinning))
	assert.Equal(t, catalog.CountryCode("FR"), c.For(recipe.StepEndOfLife))
}
