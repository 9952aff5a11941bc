package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/planner/internal/wire"
)

// DoctorCmd returns the doctor command for data validation
func DoctorCmd() *cobra.Command {
	var quiet, fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check project data for problems",
		Long: `Health check for planner data.

Validates:
- Storage backend (temp files left by interrupted saves, SQLite integrity)
- The project catalog can be read
- Every cataloged project can be loaded
- Stored projects missing from the catalog

Examples:
  planner doctor              # Run full health check
  planner doctor --quiet      # Exit code only (0=healthy, 1=issues)
  planner doctor --fix        # Rebuild the catalog from stored projects`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			adapter := wire.DoctorAdapterWithOutput(cmd.OutOrStdout())

			if fix {
				if err := adapter.Fix(ctx); err != nil {
					return err
				}
			}

			if !adapter.Check(ctx, quiet) {
				return fmt.Errorf("doctor found problems")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only set the exit code")
	cmd.Flags().BoolVar(&fix, "fix", false, "Rebuild the project catalog before checking")

	return cmd
}
