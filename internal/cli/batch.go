package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ecofocus/internal/config"
	"github.com/rshade/ecofocus/internal/greenops"
	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/logging"
	"github.com/rshade/ecofocus/internal/recipe"
	"github.com/rshade/ecofocus/internal/simulator"
)

// BatchParams holds the parameters for the batch command execution.
type BatchParams struct {
	Paths  []string
	Output string
}

// NewBatchCmd creates the "batch" command simulating many recipe files
// concurrently.
func NewBatchCmd() *cobra.Command {
	var params BatchParams

	cmd := &cobra.Command{
		Use:   "batch <recipe-file|dir>...",
		Short: "Simulate many recipes at once",
		Long: `Simulate every recipe file given, and every .yaml, .yml and .json file of
the directories given, one simulation per CPU. Any invalid recipe aborts the batch.`,
		Example: `  # Every recipe of a directory
  ecofocus batch recipes/

  # Selected files as JSON
  ecofocus batch jean.yaml tshirt.yaml --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Paths = args
			return executeBatch(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Output, "output", config.GetDefaultOutputFormat(), "output format (table, json, yaml)")

	return cmd
}

func executeBatch(cmd *cobra.Command, params BatchParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	if err := checkFormat(params.Output); err != nil {
		return err
	}

	files, err := expandRecipePaths(params.Paths)
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(ctx)
	if err != nil {
		return err
	}

	recipes := make([]*recipe.Recipe, len(files))
	for i, path := range files {
		q, readErr := readQueryFile(cmd.InOrStdin(), path)
		if readErr != nil {
			return readErr
		}
		r, resolveErr := recipe.Resolve(snap, q)
		if resolveErr != nil {
			return fmt.Errorf("recipe %s: %w", path, resolveErr)
		}
		recipes[i] = r
	}

	results, err := simulator.SimulateAll(ctx, snap, recipes)
	if err != nil {
		return err
	}
	log.Info().Ctx(ctx).
		Str("component", "cli").
		Int("recipe_count", len(results)).
		Msg("batch simulated")

	if params.Output != config.FormatTable {
		views := make([]ResultView, len(results))
		for i, res := range results {
			views[i] = NewResultView(res, false)
			views[i].Source = files[i]
		}
		return writeStructured(cmd.OutOrStdout(), params.Output, views)
	}
	return writeBatchTable(cmd.OutOrStdout(), files, recipes, results)
}

// expandRecipePaths lists the recipe files named by paths, expanding
// directories in lexical order.
func expandRecipePaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !slices.Contains([]string{".yaml", ".yml", ".json"}, filepath.Ext(e.Name())) {
				continue
			}
			files = append(files, filepath.Join(p, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no recipe files found in %v", paths)
	}
	return files, nil
}

func writeBatchTable(out io.Writer, files []string, recipes []*recipe.Recipe, results []*simulator.Result) error {
	precision := config.GetOutputPrecision()
	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "Recipe\tProduct\tMass kg\tcch kgCO2e\tpef Pt\tecs Pt")
	fmt.Fprintln(w, "------\t-------\t-------\t----------\t------\t------")

	var totalCch float64
	for i, res := range results {
		totalCch += res.Impacts.Get(impact.Cch)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			files[i],
			recipes[i].Product.ID,
			greenops.FormatFloat(res.Mass.InKilograms(), 3),
			greenops.FormatImpact(res.Impacts.Get(impact.Cch), precision),
			greenops.FormatImpact(res.Impacts.Get(impact.Pef), precision),
			greenops.FormatImpact(res.Impacts.Get(impact.Ecs), precision))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\nTotal climate change: %s kgCO2e\n", greenops.FormatFloat(totalCch, precision))
	if err != nil {
		return err
	}
	if eq, calcErr := greenops.Calculate(greenops.CarbonInput{Value: totalCch, Unit: "kgCO2e"}); calcErr == nil && !eq.IsEmpty {
		_, err = fmt.Fprintln(out, eq.DisplayText)
	}
	return err
}
