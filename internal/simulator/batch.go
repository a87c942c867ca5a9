package simulator

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/recipe"
)

// SimulateAll simulates every recipe concurrently, at most one per CPU, and
// returns the results in input order. The first failure cancels the
// remaining simulations and is returned with the index of its recipe.
func SimulateAll(ctx context.Context, db *catalog.Snapshot, recipes []*recipe.Recipe) ([]*Result, error) {
	results := make([]*Result, len(recipes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, r := range recipes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Simulate(gctx, db, r)
			if err != nil {
				return fmt.Errorf("recipe %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
