package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/planner/internal/config"
	"github.com/example/planner/internal/wire"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the configuration",
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configInitCmd())

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(wire.Config())
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", config.Path(wire.Home()))
			_, err = out.Write(data)
			return err
		},
	}
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := wire.Home()
			path := config.Path(home)

			_, err := os.Stat(path)
			if err == nil && !force {
				return fmt.Errorf("config already exists at %s\nHint: use --force to overwrite it", path)
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check config: %w", err)
			}

			if err := config.SaveConfig(home, config.Default(home)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
