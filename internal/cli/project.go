package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/planner/internal/wire"
)

// ProjectCmd returns the project command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		Long:  "List and create projects. Each project keeps its own task schedule.",
	}

	cmd.AddCommand(projectListCmd())
	cmd.AddCommand(projectCreateCmd())

	return cmd
}

func projectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ProjectAdapterWithOutput(cmd.OutOrStdout()).List(context.Background())
		},
	}
}

func projectCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new, empty project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ProjectAdapterWithOutput(cmd.OutOrStdout()).Create(context.Background(), args[0])
		},
	}
}
