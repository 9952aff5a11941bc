package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/planner/internal/wire"
)

// ChartCmd returns the chart command
func ChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the Gantt chart of a project",
		Long: `Draw the Gantt chart of a project, tasks ordered by start date.

The completed part of each bar is drawn in green and the remaining part in the
task color. With --svg the chart is written to an SVG file instead.`,
		Example: `  planner chart -p Apollo
  planner chart -p Apollo --svg apollo.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := projectFlag(cmd)
			if err != nil {
				return err
			}
			svgPath, _ := cmd.Flags().GetString("svg")
			width, _ := cmd.Flags().GetInt("width")

			return wire.TaskAdapterWithOutput(cmd.OutOrStdout()).Chart(context.Background(), project, svgPath, width)
		},
	}

	addProjectFlag(cmd)
	cmd.Flags().String("svg", "", "Write the chart to this SVG file")
	cmd.Flags().Int("width", 0, "Timeline width in columns (terminal only)")

	return cmd
}
