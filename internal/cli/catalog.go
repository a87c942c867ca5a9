package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/catalog/sqlstore"
	"github.com/rshade/ecofocus/internal/config"
	"github.com/rshade/ecofocus/internal/logging"
	"github.com/rshade/ecofocus/internal/tui"
)

const defaultCatalogDBName = "catalog.db"

// NewCatalogValidateCmd creates the "catalog validate" command.
func NewCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and check the configured catalog",
		Long: `Load the configured catalog and check every reference between its tables,
the well-known processes the simulator needs, and the version constraint.`,
		Example: `  # Check a catalog directory
  ecofocus catalog validate --catalog-dir ./data

  # Check a SQLite catalog
  ecofocus catalog validate --catalog-db catalog.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			m := snap.Manifest()
			cmd.Printf("Catalog %s is valid\n", m.Version)
			if m.Name != "" {
				cmd.Printf("  %s\n", m.Name)
			}
			cmd.Printf("  %d impact definitions, %d processes, %d materials, %d products, %d countries\n",
				len(snap.Definitions().All()), len(snap.Processes()), len(snap.Materials()),
				len(snap.Products()), len(snap.Countries()))
			return nil
		},
	}
}

// NewCatalogImportCmd creates the "catalog import" command copying the
// configured catalog into a SQLite database.
func NewCatalogImportCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the configured catalog into a SQLite database",
		Long: `Copy the configured catalog (a --catalog-dir directory or the embedded dataset)
into a SQLite database, replacing its previous content. The schema is migrated first.`,
		Example: `  # Embedded dataset into the default database
  ecofocus catalog import

  # A JSON directory into a given database
  ecofocus catalog import --catalog-dir ./data --db ./catalog.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			target, err := importTarget(dbPath)
			if err != nil {
				return err
			}

			// Importing into the configured database reads the embedded
			// dataset rather than the database itself.
			cfg := config.GetGlobalConfig()
			if cfg.Catalog.Dir == "" && filepath.Clean(cfg.Catalog.DB) == filepath.Clean(target) {
				cfg.Catalog.DB = ""
			}
			snap, err := loadSnapshot(ctx)
			if err != nil {
				return err
			}

			store, err := sqlstore.Open(ctx, target)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err = store.Import(ctx, snap); err != nil {
				return err
			}
			version, err := store.SchemaVersion(ctx)
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Info().Ctx(ctx).
				Str("component", "cli").
				Str("db", target).
				Int64("schema_version", version).
				Msg("catalog imported")
			cmd.Printf("Imported catalog %s into %s (schema version %d)\n",
				snap.Manifest().Version, target, version)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "target database (default: catalog.db in the config directory)")
	return cmd
}

func importTarget(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if db := config.GetGlobalConfig().Catalog.DB; db != "" {
		return db, nil
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultCatalogDBName), nil
}

// NewCatalogExportCmd creates the "catalog export" command writing the
// configured catalog as a JSON directory.
func NewCatalogExportCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the configured catalog as a JSON directory",
		Example: `  # Dump the embedded dataset for editing
  ecofocus catalog export --dir ./data

  # Dump a SQLite catalog
  ecofocus catalog export --catalog-db catalog.db --dir ./data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				return errors.New("--dir is required")
			}
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			if err = catalog.WriteDir(dir, snap.Data()); err != nil {
				return err
			}
			cmd.Printf("Exported catalog %s to %s\n", snap.Manifest().Version, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "target directory")
	return cmd
}

// NewCatalogProcessesCmd creates the "catalog processes" command listing
// the processes of the configured catalog.
func NewCatalogProcessesCmd() *cobra.Command {
	var (
		search string
		output string
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "processes",
		Short: "List catalog processes",
		Example: `  # Every process
  ecofocus catalog processes

  # Processes whose name or alias mentions dyeing, as JSON
  ecofocus catalog processes --search dyeing --output json

  # Plain listing on a terminal
  ecofocus catalog processes --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			if shouldUseInteractiveTUI(output, plain, cmd.OutOrStdout()) {
				return runInteractive(cmd.Context(), tui.NewProcessBrowser(
					snap.Processes(), snap.Definitions(), config.GetOutputPrecision(), search))
			}
			processes := filterProcesses(snap.Processes(), search)

			if output != config.FormatTable {
				return writeStructured(cmd.OutOrStdout(), output, processes)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(w, "ID\tAlias\tUnit\tName")
			fmt.Fprintln(w, "--\t-----\t----\t----")
			for _, p := range processes {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Alias, p.Unit, p.Name)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive filter on name and alias")
	cmd.Flags().StringVar(&output, "output", config.GetDefaultOutputFormat(), "output format (table, json, yaml)")
	cmd.Flags().BoolVar(&plain, "plain", false, "force non-interactive plain text output")
	return cmd
}

func filterProcesses(all []catalog.Process, search string) []catalog.Process {
	if search == "" {
		return all
	}
	var out []catalog.Process
	for _, p := range all {
		if tui.MatchProcess(p, search) {
			out = append(out, p)
		}
	}
	return out
}
