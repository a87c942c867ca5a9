package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/ecofocus/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// With --project it creates .ecofocus/config.yaml in the current directory,
// otherwise the global ~/.ecofocus/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

With --project, creates a project-local configuration at ./.ecofocus/config.yaml.
Commands run anywhere below that directory merge its sections over the global
configuration.`,
		Example: `  # Create global configuration
  ecofocus config init

  # Create project-local configuration
  ecofocus config init --project

  # Create configuration, overwriting existing
  ecofocus config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configInitPath(project)
			if err != nil {
				return err
			}
			return writeDefaultConfig(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create .ecofocus/config.yaml in the current directory")

	return cmd
}

func configInitPath(project bool) (string, error) {
	if !project {
		return config.ResolveConfigPath()
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, ".ecofocus", "config.yaml"), nil
}

// writeDefaultConfig saves the default configuration at path.
func writeDefaultConfig(cmd *cobra.Command, path string, force bool) error {
	// Check if config already exists and force isn't set
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}
