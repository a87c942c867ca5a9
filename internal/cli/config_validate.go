package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecofocus/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration for semantic correctness, then loads the
catalog it selects to check that simulations can run against it.`,
		Example: `  # Validate current configuration
  ecofocus config validate

  # Validate and show detailed information
  ecofocus config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	snap, err := loadSnapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		cmd.Println()
		cmd.Println("Configuration details:")
		cmd.Printf("  Catalog: %s (version %s)\n", catalogSourceLabel(cfg.Catalog), snap.Manifest().Version)
		if cfg.Catalog.Version != "" {
			cmd.Printf("  Catalog version constraint: %s\n", cfg.Catalog.Version)
		}
		cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
		cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
		cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
		cmd.Printf("  Server address: %s\n", cfg.Server.Addr)
		cmd.Printf("  Result cache: %t (ttl %s)\n", cfg.Cache.Enabled, cfg.Cache.TTL)
	}

	return nil
}

func catalogSourceLabel(c config.CatalogConfig) string {
	switch {
	case c.Dir != "":
		return "directory " + c.Dir
	case c.DB != "":
		return "database " + c.DB
	default:
		return "embedded"
	}
}
