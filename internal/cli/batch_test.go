package cli_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/cli"
)

func TestBatchDirectoryTable(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, dir, "jean.yaml", jeanRecipe)
	writeFile(t, dir, "tshirt.json", tshirtRecipe)
	writeFile(t, dir, "notes.txt", "not a recipe")

	out, err := runCLI(t, nil, "batch", dir)
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(dir, "jean.yaml"))
	assert.Contains(t, out, filepath.Join(dir, "tshirt.json"))
	assert.NotContains(t, out, "notes.txt")
	assert.Contains(t, out, "Total climate change:")
}

func TestBatchJSONKeepsOrder(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	tshirt := writeFile(t, dir, "b.json", tshirtRecipe)
	jean := writeFile(t, dir, "a.yaml", jeanRecipe)

	out, err := runCLI(t, nil, "batch", tshirt, jean, "--output", "json")
	require.NoError(t, err)

	var views []cli.ResultView
	require.NoError(t, json.Unmarshal([]byte(out), &views), out)
	require.Len(t, views, 2)
	assert.Equal(t, tshirt, views[0].Source)
	assert.InDelta(t, 0.17, views[0].MassKg, 1e-9)
	assert.Equal(t, jean, views[1].Source)
	assert.InDelta(t, 0.45, views[1].MassKg, 1e-9)
}

func TestBatchErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	_, err := runCLI(t, nil, "batch", dir)
	require.ErrorContains(t, err, "no recipe files found")

	_, err = runCLI(t, nil, "batch", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "product: cape\nmaterials: [{id: ei-coton, share: 1}]\n")
	_, err = runCLI(t, nil, "batch", bad)
	require.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Contains(t, err.Error(), "bad.yaml")

	_, err = runCLI(t, nil, "batch")
	require.Error(t, err)
}
