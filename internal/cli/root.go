// Package cli contains the cobra commands of the planner binary.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/planner/internal/version"
	"github.com/example/planner/internal/wire"
)

// RootCmd returns the planner command tree.
func RootCmd() *cobra.Command {
	var opts wire.Options

	rootCmd := &cobra.Command{
		Use:     "planner",
		Short:   "Plan project schedules from the terminal",
		Version: version.String(),
		Long: `planner keeps per-project task schedules: who does what, from when to when,
how far along it is. It warns about approaching deadlines and draws Gantt charts.

Configuration is read from ~/.planner/config.yaml (or $PLANNER_HOME/config.yaml).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			wire.Configure(opts)
			if err := wire.Init(); err != nil {
				return fmt.Errorf("failed to start planner: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return wire.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "Directory holding project data (overrides data_dir)")
	rootCmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "Storage backend: json or sqlite (overrides backend)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(ProjectCmd())
	rootCmd.AddCommand(TaskCmd())
	rootCmd.AddCommand(DeadlinesCmd())
	rootCmd.AddCommand(ChartCmd())
	rootCmd.AddCommand(ConfigCmd())
	rootCmd.AddCommand(DoctorCmd())

	return rootCmd
}

// addProjectFlag registers the --project flag shared by task-level commands.
func addProjectFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("project", "p", "", "Project name (required)")
}

// projectFlag reads --project, failing with a hint when it is missing.
func projectFlag(cmd *cobra.Command) (string, error) {
	project, _ := cmd.Flags().GetString("project")
	if project == "" {
		return "", fmt.Errorf("no project selected\nHint: use --project, and list projects with: planner project list")
	}
	return project, nil
}
