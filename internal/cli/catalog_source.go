package cli

import (
	"context"
	"fmt"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/catalog/sqlstore"
	"github.com/rshade/ecofocus/internal/config"
	"github.com/rshade/ecofocus/internal/logging"
)

// loadSnapshot loads the catalog selected by the configuration: a JSON
// directory, a SQLite database, or the embedded dataset.
func loadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	cfg := config.GetGlobalConfig().Catalog
	log := logging.FromContext(ctx)

	var opts []catalog.Option
	if cfg.Version != "" {
		opts = append(opts, catalog.WithVersionConstraint(cfg.Version))
	}

	var (
		snap   *catalog.Snapshot
		source string
		err    error
	)
	switch {
	case cfg.Dir != "":
		source = cfg.Dir
		snap, err = catalog.LoadDir(cfg.Dir, opts...)
	case cfg.DB != "":
		source = cfg.DB
		snap, err = snapshotFromDB(ctx, cfg.DB, opts...)
	default:
		source = "embedded"
		snap, err = catalog.Default(opts...)
	}
	if err != nil {
		log.Error().Ctx(ctx).
			Str("component", "cli").
			Err(err).
			Str("catalog_source", source).
			Msg("failed to load catalog")
		return nil, fmt.Errorf("loading catalog from %s: %w", source, err)
	}

	log.Debug().Ctx(ctx).
		Str("component", "cli").
		Str("catalog_source", source).
		Str("catalog_version", snap.Manifest().Version).
		Int("process_count", len(snap.Processes())).
		Msg("catalog loaded")
	return snap, nil
}

func snapshotFromDB(ctx context.Context, path string, opts ...catalog.Option) (*catalog.Snapshot, error) {
	store, err := sqlstore.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()
	return store.Snapshot(ctx, opts...)
}
