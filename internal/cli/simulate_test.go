package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/cli"
	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/recipe"
)

func TestSimulateInlineTable(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, nil, "simulate", "--product", "tshirt", "--material", "ei-coton=1")
	require.NoError(t, err)

	assert.Contains(t, out, "Mass: 0.170 kg")
	assert.Contains(t, out, "Climate change")
	assert.Contains(t, out, "kg CO2 eq")
	assert.Contains(t, out, "Use cycles:")
	assert.NotContains(t, out, "Stage", "stages are only listed with --detailed")
}

func TestSimulateDetailedTable(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, nil, "simulate", "--product", "tshirt", "--material", "ei-coton=1", "--detailed")
	require.NoError(t, err)

	for _, step := range recipe.Steps() {
		assert.Contains(t, out, string(step))
	}
}

func TestSimulateJSON(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, nil,
		"simulate", "--product", "tshirt", "--material", "ei-coton=1",
		"--mass", "0.5", "--country", "making=tr", "--detailed", "--output", "json")
	require.NoError(t, err)

	var view cli.ResultView
	require.NoError(t, json.Unmarshal([]byte(out), &view), out)
	assert.InDelta(t, 0.5, view.MassKg, 1e-9)
	assert.Greater(t, view.Impacts["cch"], 0.0)
	assert.InDelta(t, view.Impacts["cch"]/0.5, view.ImpactsPerKg["cch"], 1e-9)
	require.Len(t, view.Stages, len(recipe.Steps()))

	var making cli.StageView
	for _, st := range view.Stages {
		if st.Label == string(recipe.StepMaking) {
			making = st
		}
	}
	assert.Equal(t, "TR", making.Country)
}

func TestSimulateRecipeFileYAML(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "jean.yaml", jeanRecipe)

	out, err := runCLI(t, nil, "simulate", path, "--output", "yaml")
	require.NoError(t, err)

	var view cli.ResultView
	require.NoError(t, yaml.Unmarshal([]byte(out), &view), out)
	assert.InDelta(t, 0.45, view.MassKg, 1e-9)
	assert.Greater(t, view.Impacts["ecs"], 0.0)
	assert.Greater(t, view.Transport.SeaKm, 0.0)
}

func TestSimulateStdin(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, strings.NewReader(tshirtRecipe), "simulate", "-", "--output", "json")
	require.NoError(t, err)

	var view cli.ResultView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.InDelta(t, 0.17, view.MassKg, 1e-9)
}

func TestSimulateWritesResultCache(t *testing.T) {
	home := isolate(t)
	args := []string{"simulate", "--product", "tshirt", "--material", "ei-coton=1", "--output", "json"}

	first, err := runCLI(t, nil, args...)
	require.NoError(t, err)
	entries, err := os.ReadDir(filepath.Join(home, "cache"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	second, err := runCLI(t, nil, args...)
	require.NoError(t, err)
	assert.JSONEq(t, first, second)
}

func TestSimulateCacheFollowsCatalogContent(t *testing.T) {
	home := isolate(t)
	args := []string{"simulate", "--product", "tshirt", "--material", "ei-coton=1", "--output", "json"}

	embedded, err := runCLI(t, nil, args...)
	require.NoError(t, err)

	// Same manifest version, different climate factors.
	base, err := catalog.Default()
	require.NoError(t, err)
	data := base.Data()
	for i := range data.Processes {
		data.Processes[i].Impacts[impact.Cch] *= 2
	}
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, catalog.WriteDir(dir, data))

	edited, err := runCLI(t, nil, append(args, "--catalog-dir", dir)...)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(home, "cache"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	var a, b cli.ResultView
	require.NoError(t, json.Unmarshal([]byte(embedded), &a))
	require.NoError(t, json.Unmarshal([]byte(edited), &b))
	assert.Greater(t, b.Impacts["cch"], a.Impacts["cch"])
}

func TestSimulateNoCache(t *testing.T) {
	home := isolate(t)

	_, err := runCLI(t, nil, "simulate", "--product", "tshirt", "--material", "ei-coton=1", "--no-cache")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, "cache"))
	assert.True(t, os.IsNotExist(err))
}

func TestSimulateErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
		is      error
	}{
		{
			name:    "no input",
			args:    []string{"simulate"},
			wantErr: "either a recipe file or --product is required",
		},
		{
			name:    "file and flags",
			args:    []string{"simulate", "jean.yaml", "--product", "jean"},
			wantErr: "cannot mix a recipe file",
		},
		{
			name:    "bad material flag",
			args:    []string{"simulate", "--product", "tshirt", "--material", "ei-coton"},
			wantErr: "want id=share",
		},
		{
			name:    "bad share",
			args:    []string{"simulate", "--product", "tshirt", "--material", "ei-coton=lots"},
			wantErr: "invalid share",
		},
		{
			name:    "bad country step",
			args:    []string{"simulate", "--product", "tshirt", "--material", "ei-coton=1", "--country", "weaving=FR"},
			wantErr: "unknown step",
		},
		{
			name: "unknown product",
			args: []string{"simulate", "--product", "cape", "--material", "ei-coton=1"},
			is:   catalog.ErrNotFound,
		},
		{
			name: "mass out of range",
			args: []string{"simulate", "--product", "tshirt", "--material", "ei-coton=1", "--mass", "40"},
			is:   recipe.ErrConstraint,
		},
		{
			name:    "unknown format",
			args:    []string{"simulate", "--product", "tshirt", "--material", "ei-coton=1", "--output", "xml"},
			wantErr: "unsupported output format",
		},
		{
			name:    "missing file",
			args:    []string{"simulate", "missing.yaml"},
			wantErr: "reading recipe missing.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := runCLI(t, nil, tt.args...)
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestSimulateDetailedPlain(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, nil,
		"simulate", "--product", "tshirt", "--material", "ei-coton=1", "--detailed", "--plain")
	require.NoError(t, err)

	assert.Contains(t, out, "Road km")
	for _, step := range recipe.Steps() {
		assert.Contains(t, out, string(step))
	}
}
