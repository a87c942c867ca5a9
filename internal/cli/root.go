package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/ecofocus/internal/config"
	"github.com/rshade/ecofocus/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// isWriterTerminal reports whether w is a terminal. Buffers used in tests
// never are.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// RootFlags holds the persistent flags shared by every command.
type RootFlags struct {
	Debug      bool
	ConfigPath string
	ProjectDir string
	CatalogDir string
	CatalogDB  string
}

// NewRootCmd creates the root Cobra command for the ecofocus CLI.
// It loads the configuration, wires up logging and tracing, and registers
// the simulate, batch, catalog, serve and config commands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		flags     RootFlags
		logResult *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:           "ecofocus",
		Short:         "Life-cycle impact simulation for garments",
		Long:          "ecofocus computes the environmental footprint of a garment across its life cycle",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, flags); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.Debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.ConfigPath, "config", "", "configuration file (default ~/.ecofocus/config.yaml)")
	pf.StringVar(&flags.ProjectDir, "project-dir", "", "project directory holding .ecofocus/config.yaml")
	pf.StringVar(&flags.CatalogDir, "catalog-dir", "", "load the catalog from a JSON directory")
	pf.StringVar(&flags.CatalogDB, "catalog-db", "", "load the catalog from a SQLite database")

	cmd.AddCommand(NewSimulateCmd(), NewBatchCmd(), newCatalogCmd(), NewServeCmd(), newConfigCmd())
	return cmd
}

// loadConfig builds the effective configuration and installs it as the
// global one. Precedence: flags, environment, project overlay, file,
// defaults.
func loadConfig(cmd *cobra.Command, flags RootFlags) error {
	ctx := cmd.Context()

	var cfg *config.Config
	if flags.ConfigPath != "" {
		loaded, err := config.Load(flags.ConfigPath)
		if err != nil {
			return err
		}
		loaded.ApplyEnv()
		cfg = loaded
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		cfg = config.NewWithProjectDir(ctx, config.ResolveProjectDir(ctx, flags.ProjectDir, wd))
	}

	if flags.CatalogDir != "" {
		cfg.Catalog.Dir = flags.CatalogDir
	}
	if flags.CatalogDB != "" {
		cfg.Catalog.DB = flags.CatalogDB
		if flags.CatalogDir == "" {
			cfg.Catalog.Dir = ""
		}
	}

	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # Simulate a cotton t-shirt
  ecofocus simulate --product tshirt --material ei-coton=1

  # Simulate a recipe file and print every stage as JSON
  ecofocus simulate jean.yaml --detailed --output json

  # Simulate many recipes at once
  ecofocus batch recipes/*.yaml

  # Serve the HTTP API
  ecofocus serve --addr :8080

  # Copy the embedded catalog into a SQLite database
  ecofocus catalog import --db ~/.ecofocus/catalog.db

  # Initialize configuration
  ecofocus config init`

// newCatalogCmd creates the catalog command group.
func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "catalog", Short: "Catalog management commands"}
	cmd.AddCommand(
		NewCatalogValidateCmd(), NewCatalogImportCmd(),
		NewCatalogExportCmd(), NewCatalogProcessesCmd(),
	)
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
