package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/ecofocus/internal/config"
)

// NewConfigShowCmd creates the config show command printing the effective
// configuration after file, project overlay, environment and flags.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Example: `  # Effective configuration as YAML
  ecofocus config show

  # As JSON, with a catalog override
  ecofocus config show --catalog-db catalog.db --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == config.FormatTable {
				output = config.FormatYAML
			}
			if err := checkFormat(output); err != nil {
				return err
			}
			cfg := config.GetGlobalConfig()
			if path := cfg.Path(); path != "" {
				cmd.PrintErrf("# loaded from %s\n", path)
			}
			return writeStructured(cmd.OutOrStdout(), output, cfg)
		},
	}

	cmd.Flags().StringVar(&output, "output", config.FormatYAML, "output format (yaml, json)")
	return cmd
}
