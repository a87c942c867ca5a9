package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ecofocus/internal/cache"
	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/config"
	"github.com/rshade/ecofocus/internal/logging"
	"github.com/rshade/ecofocus/internal/recipe"
	"github.com/rshade/ecofocus/internal/simulator"
	"github.com/rshade/ecofocus/internal/tui"
)

// SimulateParams holds the parameters for the simulate command execution.
// Exported for testing.
type SimulateParams struct {
	// RecipePath is a YAML or JSON query file, or "-" for stdin.
	RecipePath string

	// Inline query flags, used when no recipe file is given.
	Product   string
	Materials []string // id=share
	Countries []string // step=country

	Mass     float64
	Output   string
	Detailed bool
	NoCache  bool

	// Plain keeps --detailed output as text on a terminal.
	Plain bool
}

// NewSimulateCmd creates the "simulate" command computing the impacts of
// one garment.
func NewSimulateCmd() *cobra.Command {
	var params SimulateParams

	cmd := &cobra.Command{
		Use:   "simulate [recipe-file]",
		Short: "Compute the life-cycle impacts of a garment",
		Long: `Compute the environmental impacts of a garment from a recipe file or flags.

The recipe names a product category and a blend of materials; every other
parameter defaults from the product, the materials and the countries involved.`,
		Example: `  # Inline recipe
  ecofocus simulate --product tshirt --material ei-coton=1

  # Blend made in Turkey, with the per-stage breakdown
  ecofocus simulate --product jean --material ei-coton=0.9 --material ei-elasthane=0.1 \
    --country making=TR --detailed

  # Per-stage breakdown as text, even on a terminal
  ecofocus simulate --product jean --material ei-coton=1 --detailed --plain

  # Recipe file, JSON output
  ecofocus simulate jean.yaml --output json

  # Recipe from stdin
  cat jean.yaml | ecofocus simulate -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				params.RecipePath = args[0]
			}
			if !cmd.Flags().Changed("mass") {
				params.Mass = -1
			}
			return executeSimulate(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Product, "product", "", "product category (e.g. tshirt, jean)")
	cmd.Flags().StringArrayVar(&params.Materials, "material", nil, "material share id=share (repeatable)")
	cmd.Flags().StringArrayVar(&params.Countries, "country", nil,
		"country of a step step=code, e.g. making=TR (repeatable)")
	cmd.Flags().Float64Var(&params.Mass, "mass", 0, "mass of the product in kg (default from the product)")
	cmd.Flags().StringVar(&params.Output, "output", config.GetDefaultOutputFormat(), "output format (table, json, yaml)")
	cmd.Flags().BoolVar(&params.Detailed, "detailed", false, "show the per-stage breakdown")
	cmd.Flags().BoolVar(&params.NoCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&params.Plain, "plain", false, "force non-interactive plain text output")

	return cmd
}

func executeSimulate(cmd *cobra.Command, params SimulateParams) error {
	ctx := cmd.Context()
	if err := checkFormat(params.Output); err != nil {
		return err
	}

	q, err := buildQuery(cmd.InOrStdin(), params)
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(ctx)
	if err != nil {
		return err
	}

	res, err := simulateCached(ctx, snap, q, !params.NoCache)
	if err != nil {
		return err
	}
	if params.Detailed && shouldUseInteractiveTUI(params.Output, params.Plain, cmd.OutOrStdout()) {
		return runInteractive(ctx, tui.NewStageBrowser(res, snap.Definitions(), config.GetOutputPrecision()))
	}
	return renderResult(cmd.OutOrStdout(), res, snap.Definitions(), params.Output, params.Detailed)
}

// buildQuery reads the recipe file or assembles a query from the inline
// flags. A non-negative Mass overrides the query mass.
func buildQuery(stdin io.Reader, params SimulateParams) (recipe.Query, error) {
	hasInline := params.Product != "" || len(params.Materials) > 0
	if params.RecipePath != "" && hasInline {
		return recipe.Query{}, errors.New("cannot mix a recipe file with --product/--material")
	}

	var q recipe.Query
	switch {
	case params.RecipePath != "":
		loaded, err := readQueryFile(stdin, params.RecipePath)
		if err != nil {
			return recipe.Query{}, err
		}
		q = loaded
	case params.Product != "":
		q.Product = catalog.ProductID(params.Product)
		for _, raw := range params.Materials {
			mq, err := parseMaterialFlag(raw)
			if err != nil {
				return recipe.Query{}, err
			}
			q.Materials = append(q.Materials, mq)
		}
	default:
		return recipe.Query{}, errors.New("either a recipe file or --product is required")
	}

	for _, raw := range params.Countries {
		if err := applyCountryFlag(&q, raw); err != nil {
			return recipe.Query{}, err
		}
	}
	if params.Mass >= 0 {
		mass := params.Mass
		q.Mass = &mass
	}
	return q, nil
}

func readQueryFile(stdin io.Reader, path string) (recipe.Query, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return recipe.Query{}, fmt.Errorf("reading recipe %s: %w", path, err)
	}
	q, err := recipe.ParseQuery(data)
	if err != nil {
		return recipe.Query{}, fmt.Errorf("recipe %s: %w", path, err)
	}
	return q, nil
}

// parseMaterialFlag parses "ei-coton=0.8".
func parseMaterialFlag(raw string) (recipe.MaterialQuery, error) {
	id, share, ok := strings.Cut(raw, "=")
	if !ok || id == "" {
		return recipe.MaterialQuery{}, fmt.Errorf("invalid --material %q, want id=share", raw)
	}
	v, err := strconv.ParseFloat(share, 64)
	if err != nil {
		return recipe.MaterialQuery{}, fmt.Errorf("invalid share in --material %q: %w", raw, err)
	}
	return recipe.MaterialQuery{ID: catalog.MaterialID(id), Share: v}, nil
}

// applyCountryFlag parses "making=TR" onto q.
func applyCountryFlag(q *recipe.Query, raw string) error {
	name, code, ok := strings.Cut(raw, "=")
	if !ok || code == "" {
		return fmt.Errorf("invalid --country %q, want step=code", raw)
	}
	step, err := recipe.ParseStep(name)
	if err != nil {
		return fmt.Errorf("invalid --country %q: %w", raw, err)
	}
	country := catalog.CountryCode(strings.ToUpper(code))

	switch step {
	case recipe.StepSpinning:
		q.CountrySpinning = &country
	case recipe.StepFabric:
		q.CountryFabric = &country
	case recipe.StepEnnobling:
		q.CountryDyeing = &country
	case recipe.StepMaking:
		q.CountryMaking = &country
	case recipe.StepDistribution:
		q.CountryDistribution = &country
	case recipe.StepUse:
		q.CountryUse = &country
	case recipe.StepEndOfLife:
		q.CountryEndOfLife = &country
	}
	return nil
}

// simulateCached resolves and simulates q, going through the on-disk
// result cache when useCache is set and the cache is enabled.
func simulateCached(
	ctx context.Context,
	snap *catalog.Snapshot,
	q recipe.Query,
	useCache bool,
) (*simulator.Result, error) {
	log := logging.FromContext(ctx)

	r, err := recipe.Resolve(snap, q)
	if err != nil {
		return nil, err
	}

	results, key := openResultCache(ctx, snap, q, useCache)
	if results != nil {
		if res, ok := results.Get(ctx, key); ok {
			return res, nil
		}
	}

	res, err := simulator.Simulate(ctx, snap, r)
	if err != nil {
		return nil, err
	}

	if results != nil {
		if putErr := results.Put(key, res); putErr != nil {
			log.Warn().Ctx(ctx).
				Str("component", "cli").
				Err(putErr).
				Msg("could not cache simulation result")
		}
	}
	return res, nil
}

// openResultCache returns the result cache and the key of q, or nil when
// caching is off or the cache directory is unusable.
func openResultCache(
	ctx context.Context,
	snap *catalog.Snapshot,
	q recipe.Query,
	useCache bool,
) (*cache.Results, string) {
	cfg := config.GetGlobalConfig().Cache
	if !useCache || !cfg.Enabled {
		return nil, ""
	}
	log := logging.FromContext(ctx)

	dir, err := config.GetCacheDir()
	if err != nil {
		log.Debug().Ctx(ctx).Str("component", "cli").Err(err).Msg("result cache disabled")
		return nil, ""
	}
	store, err := cache.NewFileStore(dir, true, cfg.TTL)
	if err != nil {
		log.Debug().Ctx(ctx).Str("component", "cli").Err(err).Msg("result cache disabled")
		return nil, ""
	}
	key, err := cache.Key(snap.Digest(), q)
	if err != nil {
		return nil, ""
	}
	return cache.NewResults(store), key
}
