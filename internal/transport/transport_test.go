package transport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/transport"
	"github.com/rshade/ecofocus/internal/unit"
)

func process(cch float64) catalog.Process {
	v := impact.Zero()
	v[impact.Cch] = cch
	return catalog.Process{Unit: catalog.UnitTonneKm, Impacts: v}
}

func ratio(r float64) *unit.Ratio {
	v := unit.Ratio(r)
	return &v
}

func TestRoadSeaRatio(t *testing.T) {
	tests := []struct {
		name string
		d    catalog.Distance
		want float64
	}{
		{"declared wins", catalog.Distance{Road: 100, Sea: 100, RoadSeaRatio: ratio(0.3)}, 0.3},
		{"no road", catalog.Distance{Road: 0, Sea: 1000}, 0},
		{"no sea", catalog.Distance{Road: 5000, Sea: 0}, 1},
		{"short", catalog.Distance{Road: 499, Sea: 600}, 1},
		{"medium", catalog.Distance{Road: 999, Sea: 1200}, 0.9},
		{"long", catalog.Distance{Road: 1999, Sea: 2500}, 0.5},
		{"longer", catalog.Distance{Road: 2999, Sea: 3500}, 0.25},
		{"far", catalog.Distance{Road: 3000, Sea: 3500}, 0},
		{"same country", catalog.Distance{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, transport.RoadSeaRatio(tt.d).Float(), 1e-12)
		})
	}
}

func TestSplitPartitionsTransport(t *testing.T) {
	d := catalog.Distance{Road: 1000, Sea: 1000, Air: 1000, RoadSeaRatio: ratio(0.4)}

	for _, air := range []unit.Ratio{0, 0.33, 1} {
		leg := transport.Split(d, air)
		total := (leg.Road + leg.Sea + leg.Air).InKilometers() / 1000
		assert.InDelta(t, 1.0, total, 1e-12, "air=%v", air)
	}

	allAir := transport.Split(d, 1)
	assert.Zero(t, allAir.Road)
	assert.Zero(t, allAir.Sea)
	assert.InDelta(t, 1000.0, allAir.Air.InKilometers(), 1e-12)

	noAir := transport.Split(d, 0)
	assert.Zero(t, noAir.Air)
	assert.InDelta(t, 400.0, noAir.Road.InKilometers(), 1e-12)
	assert.InDelta(t, 600.0, noAir.Sea.InKilometers(), 1e-12)
}

func TestImpacts(t *testing.T) {
	p := transport.Processes{Road: process(0.2), Sea: process(0.01), Air: process(1)}
	leg := transport.Leg{Road: 100, Sea: 1000, Air: 10}

	got := transport.Impacts(unit.Kilograms(500), leg, p)

	assert.InDelta(t, 0.5*(100*0.2+1000*0.01+10*1), got.Get(impact.Cch), 1e-12)
	assert.Zero(t, got.Get(impact.Pef))
}

func TestComputeInland(t *testing.T) {
	p := transport.Processes{Road: process(1), Sea: process(1), Air: process(1)}

	leg := transport.Compute(unit.Kilograms(1000), catalog.Distance{}, 0, true, p)
	assert.InDelta(t, transport.InlandRoad.InKilometers(), leg.Road.InKilometers(), 1e-12)
	assert.Zero(t, leg.Air)
	assert.InDelta(t, 500.0, leg.Impacts.Get(impact.Cch), 1e-12)

	plain := transport.Compute(unit.Kilograms(1000), catalog.Distance{}, 0, false, p)
	assert.True(t, plain.Impacts.IsZero())
}

type table map[[2]catalog.CountryCode]catalog.Distance

func (tb table) Distance(from, to catalog.CountryCode) (catalog.Distance, error) {
	if d, ok := tb[[2]catalog.CountryCode{from, to}]; ok {
		return d, nil
	}
	return catalog.Distance{}, &catalog.LookupError{Kind: catalog.KindDistance, Key: string(from + "-" + to)}
}

func TestBetween(t *testing.T) {
	tb := table{{"FR", "PT"}: {Road: 1500, Sea: 2000, Air: 1100}}

	d, err := transport.Between(tb, "FR", "PT")
	require.NoError(t, err)
	assert.InDelta(t, 1500.0, d.Road.InKilometers(), 1e-12)

	_, err = transport.Between(tb, "FR", "CN")
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestLegPlus(t *testing.T) {
	a := transport.Leg{Road: 1, Sea: 2, Air: 3, Impacts: impact.Scale(process(1).Impacts, 1)}
	sum := a.Plus(a)
	assert.InDelta(t, 2.0, sum.Road.InKilometers(), 1e-12)
	assert.InDelta(t, 6.0, sum.Air.InKilometers(), 1e-12)
	assert.InDelta(t, 2.0, sum.Impacts.Get(impact.Cch), 1e-12)
}
