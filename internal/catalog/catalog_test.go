package catalog_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/impact"
)

func defaultSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	db, err := catalog.Default()
	require.NoError(t, err)
	return db
}

func TestDefaultDataset(t *testing.T) {
	db := defaultSnapshot(t)

	assert.Equal(t, uint64(1), db.Version().Major())
	assert.NotEmpty(t, db.Processes())
	assert.NotEmpty(t, db.Materials())
	assert.NotEmpty(t, db.Products())
	assert.NotEmpty(t, db.Countries())

	wk := db.WellKnown()
	assert.Equal(t, catalog.UnitTonneKm, wk.SeaTransport.Unit)
	assert.Equal(t, catalog.UnitSquareMeter, wk.PrintingPigment.Unit)
	assert.Positive(t, wk.Weaving.ElecPPPM)
	assert.Equal(t, wk.KnittingCircular, wk.FabricProcess(catalog.FabricKnittingCircular))
	assert.Equal(t, wk.Weaving, wk.FabricProcess(catalog.FabricWeaving))
}

func TestDefaultMaterialsHavePositiveImpacts(t *testing.T) {
	db := defaultSnapshot(t)
	for _, m := range db.Materials() {
		p, err := db.ProcessByID(m.Process)
		require.NoError(t, err)
		for _, c := range impact.Codes() {
			if c.IsComposite() {
				continue
			}
			assert.Positive(t, p.Impacts.Get(c), "%s %s", m.ID, c)
		}
	}
}

func TestLookups(t *testing.T) {
	db := defaultSnapshot(t)

	t.Run("country", func(t *testing.T) {
		fr, err := db.Country("FR")
		require.NoError(t, err)
		assert.Equal(t, "France", fr.Name)
		assert.Equal(t, catalog.AquaticBest, fr.AquaticPollution)
	})

	t.Run("material and its processes", func(t *testing.T) {
		cotton, err := db.Material("ei-coton")
		require.NoError(t, err)
		assert.True(t, cotton.CanBeRecycled())
		require.NotNil(t, cotton.CFF)
		_, err = db.ProcessByID(cotton.RecycledProcess)
		require.NoError(t, err)
		assert.Equal(t, catalog.SpinningConventional, cotton.DefaultSpinning())
	})

	t.Run("process by name", func(t *testing.T) {
		p, err := db.ProcessByName("Transport, freight, sea, container ship")
		require.NoError(t, err)
		assert.Equal(t, catalog.Alias("seaTransport"), p.Alias)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		ab, err := db.Distance("FR", "CN")
		require.NoError(t, err)
		ba, err := db.Distance("CN", "FR")
		require.NoError(t, err)
		assert.Equal(t, ab, ba)
	})

	t.Run("same country", func(t *testing.T) {
		d, err := db.Distance("FR", "FR")
		require.NoError(t, err)
		assert.Zero(t, d.Sea)
		assert.Zero(t, d.Air)
	})

	t.Run("definition", func(t *testing.T) {
		def, err := db.Definition(impact.Cch)
		require.NoError(t, err)
		assert.Equal(t, "kg CO2 eq", def.Unit)
		require.NotNil(t, def.PEF)
	})
}

func TestLookupErrors(t *testing.T) {
	db := defaultSnapshot(t)

	tests := []struct {
		name string
		call func() error
		kind catalog.Kind
	}{
		{"process", func() error { _, err := db.ProcessByID("nope"); return err }, catalog.KindProcess},
		{"alias", func() error { _, err := db.ProcessByAlias("nope"); return err }, catalog.KindAlias},
		{"material", func() error { _, err := db.Material("nope"); return err }, catalog.KindMaterial},
		{"product", func() error { _, err := db.Product("nope"); return err }, catalog.KindProduct},
		{"country", func() error { _, err := db.Country("XX"); return err }, catalog.KindCountry},
		{"distance", func() error { _, err := db.Distance("FR", "XX"); return err }, catalog.KindDistance},
		{"definition", func() error { _, err := db.Definition(impact.Code(99)); return err }, catalog.KindDefinition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, catalog.ErrNotFound)
			var lookupErr *catalog.LookupError
			require.ErrorAs(t, err, &lookupErr)
			assert.Equal(t, tt.kind, lookupErr.Kind)
			assert.NotEmpty(t, lookupErr.Key)
		})
	}
}

func TestNewRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*catalog.Data)
	}{
		{"missing well-known alias", func(d *catalog.Data) {
			for i := range d.Processes {
				if d.Processes[i].Alias == "seaTransport" {
					d.Processes[i].Alias = ""
				}
			}
		}},
		{"incompatible major version", func(d *catalog.Data) { d.Manifest.Version = "2.0.0" }},
		{"unparsable version", func(d *catalog.Data) { d.Manifest.Version = "latest" }},
		{"missing version", func(d *catalog.Data) { d.Manifest.Version = "" }},
		{"missing definition", func(d *catalog.Data) { d.Definitions = d.Definitions[1:] }},
		{"duplicate process", func(d *catalog.Data) { d.Processes = append(d.Processes, d.Processes[0]) }},
		{"dangling material process", func(d *catalog.Data) { d.Materials[0].Process = "nope" }},
		{"dangling country process", func(d *catalog.Data) { d.Countries[0].ElectricityProcess = "nope" }},
		{"unknown fabric", func(d *catalog.Data) { d.Products[0].Fabric = "felting" }},
		{"making waste of one", func(d *catalog.Data) { d.Products[0].MakingWaste = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := defaultSnapshot(t).Data()
			tt.mutate(&data)

			db, err := catalog.New(data)
			require.Error(t, err)
			assert.Nil(t, db)
			assert.ErrorIs(t, err, catalog.ErrConfiguration)
			var cfgErr *catalog.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestVersionConstraintOption(t *testing.T) {
	data := defaultSnapshot(t).Data()

	_, err := catalog.New(data, catalog.WithVersionConstraint(">= 1.5.0"))
	require.ErrorIs(t, err, catalog.ErrConfiguration)

	db, err := catalog.New(data, catalog.WithVersionConstraint("~1.4"))
	require.NoError(t, err)
	assert.Equal(t, data.Manifest.Version, db.Version().String())
}

func TestWriteDirRoundTrip(t *testing.T) {
	original := defaultSnapshot(t)
	dir := t.TempDir()

	require.NoError(t, catalog.WriteDir(dir, original.Data()))
	reloaded, err := catalog.LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, original.Data(), reloaded.Data())
	assert.Equal(t, original.Digest(), reloaded.Digest())
}

func TestDigestTracksContent(t *testing.T) {
	original := defaultSnapshot(t)
	assert.Len(t, original.Digest(), 64)

	same, err := catalog.New(original.Data())
	require.NoError(t, err)
	assert.Equal(t, original.Digest(), same.Digest())

	t.Run("edited table, same version", func(t *testing.T) {
		data := original.Data()
		data.Countries[0].Name += " (edited)"
		edited, err := catalog.New(data)
		require.NoError(t, err)
		assert.Equal(t, original.Manifest().Version, edited.Manifest().Version)
		assert.NotEqual(t, original.Digest(), edited.Digest())
	})

	t.Run("new version, same tables", func(t *testing.T) {
		data := original.Data()
		data.Manifest.Version = "1.9.9"
		bumped, err := catalog.New(data)
		require.NoError(t, err)
		assert.NotEqual(t, original.Digest(), bumped.Digest())
	})
}

func TestLoadDirMissingFile(t *testing.T) {
	_, err := catalog.LoadDir(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrConfiguration)
}

func TestDistanceNullRoad(t *testing.T) {
	var d catalog.Distance
	require.NoError(t, json.Unmarshal([]byte(`{"road":null,"sea":19000,"air":9000}`), &d))
	assert.Zero(t, d.Road)
	assert.InDelta(t, 19000.0, d.Sea.InKilometers(), 1e-9)
	assert.Nil(t, d.RoadSeaRatio)

	require.NoError(t, json.Unmarshal([]byte(`{"road":300,"sea":0,"air":200,"roadSeaRatio":0.8}`), &d))
	require.NotNil(t, d.RoadSeaRatio)
	assert.InDelta(t, 0.8, d.RoadSeaRatio.Float(), 1e-12)
}

func TestEnums(t *testing.T) {
	assert.InDelta(t, 60.0, catalog.ComplexityMedium.Minutes(), 1e-12)
	assert.Zero(t, catalog.ComplexityNotApplicable.Minutes())
	assert.True(t, catalog.ComplexityNotApplicable.Valid())
	assert.False(t, catalog.MakingComplexity("extreme").Valid())
	assert.True(t, catalog.FabricKnittingMix.IsKnitted())
	assert.False(t, catalog.FabricWeaving.IsKnitted())
	assert.Less(t, catalog.AquaticBest.Ratio(), catalog.AquaticAverage.Ratio())
	assert.Less(t, catalog.AquaticAverage.Ratio(), catalog.AquaticWorst.Ratio())
	assert.Len(t, catalog.RequiredAliases(), 21)
}
