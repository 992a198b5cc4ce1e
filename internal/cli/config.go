package cli

import (
	"fmt"

	"trading-journal-go/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate configuration files",
		// config init must work before any configuration exists.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Long: `Create a new configuration file with default settings.

Example:
  journalctl config init --output configs/config.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Default().Save(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "config.yml", "output config file path")

	cmd.AddCommand(initCmd)
	return cmd
}
