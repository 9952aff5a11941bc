package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/planner/internal/ports/primary"
	"github.com/example/planner/internal/wire"
)

// TaskCmd returns the task command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the tasks of a project",
		Long: `Add, edit, delete and list tasks.

Tasks are addressed by name. Edit and delete apply to every task with that name.`,
	}
	addProjectFlag(cmd)

	cmd.AddCommand(taskAddCmd())
	cmd.AddCommand(taskEditCmd())
	cmd.AddCommand(taskDeleteCmd())
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskShowCmd())

	return cmd
}

func taskAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		Example: `  planner task add Design -p Apollo --person Ana --start 2024-03-01 --end 2024-03-05
  planner task add Build -p Apollo --person Ben --start 2024-03-06 --end 2024-03-20 --color "#3366CC" --priority High`,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := projectFlag(cmd)
			if err != nil {
				return err
			}
			person, _ := cmd.Flags().GetString("person")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			color, _ := cmd.Flags().GetString("color")
			progress, _ := cmd.Flags().GetString("progress")
			priority, _ := cmd.Flags().GetString("priority")

			return wire.TaskAdapterWithOutput(cmd.OutOrStdout()).Add(context.Background(), primary.AddTaskRequest{
				Project:  project,
				Name:     args[0],
				Person:   person,
				Start:    start,
				End:      end,
				Color:    color,
				Progress: progress,
				Priority: priority,
			})
		},
	}

	cmd.Flags().String("person", "", "Person responsible for the task")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().String("color", "", "Bar color (#RRGGBB, default #FFFFFF)")
	cmd.Flags().String("progress", "", "Completion percentage (0-100, default 0)")
	cmd.Flags().String("priority", "", "Priority: Low, Mid or High (default Mid)")

	return cmd
}

func taskEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [name]",
		Short: "Edit every task with the given name",
		Long:  "Edit every task with the given name. Only the flags given are changed.",
		Args:  cobra.ExactArgs(1),
		Example: `  planner task edit Design -p Apollo --progress 80
  planner task edit Design -p Apollo --name "UI Design" --end 2024-03-08`,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := projectFlag(cmd)
			if err != nil {
				return err
			}

			req := primary.EditTaskRequest{Project: project, TaskName: args[0]}
			req.Name = changedString(cmd, "name")
			req.Person = changedString(cmd, "person")
			req.Start = changedString(cmd, "start")
			req.End = changedString(cmd, "end")
			req.Color = changedString(cmd, "color")
			req.Progress = changedString(cmd, "progress")
			req.Priority = changedString(cmd, "priority")

			return wire.TaskAdapterWithOutput(cmd.OutOrStdout()).Edit(context.Background(), req)
		},
	}

	cmd.Flags().String("name", "", "New task name")
	cmd.Flags().String("person", "", "New person")
	cmd.Flags().String("start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().String("color", "", "New bar color (#RRGGBB)")
	cmd.Flags().String("progress", "", "New completion percentage (0-100)")
	cmd.Flags().String("priority", "", "New priority: Low, Mid or High")

	return cmd
}

func taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete every task with the given name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := projectFlag(cmd)
			if err != nil {
				return err
			}
			return wire.TaskAdapterWithOutput(cmd.OutOrStdout()).Delete(context.Background(), project, args[0])
		},
	}
}

func taskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := projectFlag(cmd)
			if err != nil {
				return err
			}
			return wire.TaskAdapterWithOutput(cmd.OutOrStdout()).List(context.Background(), project)
		},
	}
}

func taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := projectFlag(cmd)
			if err != nil {
				return err
			}
			return wire.TaskAdapterWithOutput(cmd.OutOrStdout()).Show(context.Background(), project, args[0])
		},
	}
}

// changedString returns the flag value only if the user set it.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
