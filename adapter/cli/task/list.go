package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/analytics/application/queries"
	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

var showAll bool

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List tasks",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			UserID:      app.CurrentUserID,
			PendingOnly: !showAll,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}

		for _, t := range tasks {
			marker := "[ ]"
			if t.Completed {
				marker = "[x]"
			}
			line := fmt.Sprintf("%s %s  %s", marker, t.ID.String()[:8], t.Title)
			var extras []string
			if t.Category != "" {
				extras = append(extras, t.Category)
			}
			if t.Priority != domain.PriorityNone {
				extras = append(extras, string(t.Priority))
			}
			if t.DueDate != nil {
				extras = append(extras, "due "+t.DueDate.Format("Jan 2"))
			}
			if len(extras) > 0 {
				line += "  (" + strings.Join(extras, ", ") + ")"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "include completed tasks")
}

// resolveTaskID accepts a full UUID or an unambiguous 8-char prefix.
func resolveTaskID(ctx context.Context, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}

	app := cli.GetApp()
	if app == nil || app.ListTasksHandler == nil {
		return uuid.Nil, fmt.Errorf("application not initialized")
	}

	tasks, err := app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{UserID: app.CurrentUserID})
	if err != nil {
		return uuid.Nil, err
	}

	var match uuid.UUID
	for _, t := range tasks {
		if strings.HasPrefix(t.ID.String(), strings.ToLower(arg)) {
			if match != uuid.Nil {
				return uuid.Nil, fmt.Errorf("ambiguous task id %q", arg)
			}
			match = t.ID
		}
	}
	if match == uuid.Nil {
		return uuid.Nil, fmt.Errorf("no task matches %q", arg)
	}
	return match, nil
}
