package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/catalog/sqlstore"
	"github.com/rshade/ecofocus/internal/impact"
)

func openStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	store, err := sqlstore.Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenAppliesMigrations(t *testing.T) {
	store := openStore(t)
	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")
	ctx := context.Background()

	first, err := sqlstore.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := sqlstore.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	assert.Equal(t, path, second.Path())
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := sqlstore.Open(context.Background(), "")
	assert.Error(t, err)
}

func TestLoadEmptyDatabase(t *testing.T) {
	store := openStore(t)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, catalog.ErrConfiguration)
}

func TestImportLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	snap, err := catalog.Default()
	require.NoError(t, err)

	store := openStore(t)
	require.NoError(t, store.Import(ctx, snap))

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Data(), data)

	loaded, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Manifest(), loaded.Manifest())
	assert.Equal(t, snap.WellKnown(), loaded.WellKnown())
	assert.Equal(t, snap.Digest(), loaded.Digest())

	want := snap.Definitions().Get(impact.Cch).Ecoscore
	got := loaded.Definitions().Get(impact.Cch).Ecoscore
	require.NotNil(t, want)
	require.NotNil(t, got)
	assert.InDelta(t, want.Weighting, got.Weighting, 1e-12)
	assert.InDelta(t, want.Normalization, got.Normalization, 1e-12)
}

func TestImportReplacesPreviousCatalog(t *testing.T) {
	ctx := context.Background()
	snap, err := catalog.Default()
	require.NoError(t, err)

	data := snap.Data()
	data.Manifest.Version = "1.5.0"
	data.Products = data.Products[:1]
	smaller, err := catalog.New(data)
	require.NoError(t, err)

	store := openStore(t)
	require.NoError(t, store.Import(ctx, snap))
	require.NoError(t, store.Import(ctx, smaller))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.5.0", loaded.Manifest.Version)
	assert.Len(t, loaded.Products, 1)
	assert.Len(t, loaded.Processes, len(snap.Processes()))
}

func TestSnapshotAppliesVersionConstraint(t *testing.T) {
	ctx := context.Background()
	snap, err := catalog.Default()
	require.NoError(t, err)

	store := openStore(t)
	require.NoError(t, store.Import(ctx, snap))

	_, err = store.Snapshot(ctx, catalog.WithVersionConstraint(">= 2.0.0"))
	assert.ErrorIs(t, err, catalog.ErrConfiguration)
}
