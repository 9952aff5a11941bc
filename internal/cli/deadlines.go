package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/planner/internal/models"
	"github.com/example/planner/internal/wire"
)

// DeadlinesCmd returns the deadlines command
func DeadlinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deadlines",
		Short: "Show tasks ending soon",
		Long: `Show the tasks whose end date falls between today and the end of the
warning window (deadline_window_days, 10 by default), both inclusive.
Tasks that are already overdue are not listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := projectFlag(cmd)
			if err != nil {
				return err
			}

			now := time.Now()
			if today, _ := cmd.Flags().GetString("today"); today != "" {
				if now, err = models.ParseDate(today); err != nil {
					return err
				}
			}

			return wire.TaskAdapterWithOutput(cmd.OutOrStdout()).Deadlines(context.Background(), project, now)
		},
	}

	addProjectFlag(cmd)
	cmd.Flags().String("today", "", "Evaluate as of this date (YYYY-MM-DD) instead of today")

	return cmd
}
