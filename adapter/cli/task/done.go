package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/analytics/application/commands"
)

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteTaskHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		taskID, err := resolveTaskID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		completed, err := app.CompleteTaskHandler.Handle(cmd.Context(), commands.CompleteTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		fmt.Printf("Completed: %s\n", completed.Title)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <task-id>",
	Short:   "Delete a task",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeleteTaskHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		taskID, err := resolveTaskID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if err := app.DeleteTaskHandler.Handle(cmd.Context(), commands.DeleteTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		}); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		fmt.Println("Task deleted.")
		return nil
	},
}
