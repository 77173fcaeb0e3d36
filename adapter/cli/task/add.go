package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/analytics/application/commands"
)

var (
	addCategory string
	addPriority string
	addDue      string
	addStart    string
	addEnd      string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task.

Examples:
  cadence task add "Buy groceries"
  cadence task add "Finish report" --due 2025-07-04 --priority high
  cadence task add "Team sync" --start "2025-07-01T10:00" --end "2025-07-01T11:00" --category work`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		due, err := parseFlagTime(addDue)
		if err != nil {
			return fmt.Errorf("invalid --due: %w", err)
		}
		start, err := parseFlagTime(addStart)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		end, err := parseFlagTime(addEnd)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}

		created, err := app.CreateTaskHandler.Handle(cmd.Context(), commands.CreateTaskCommand{
			UserID:    app.CurrentUserID,
			Title:     strings.Join(args, " "),
			Category:  addCategory,
			Priority:  addPriority,
			DueDate:   due,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Println("Task created!")
		fmt.Printf("  Title: %s\n", created.Title)
		fmt.Printf("  ID: %s\n", created.ID.String()[:8])
		if created.Category != "" {
			fmt.Printf("  Category: %s\n", created.Category)
		}
		if created.Priority != "" {
			fmt.Printf("  Priority: %s\n", created.Priority)
		}
		if created.DueDate != nil {
			fmt.Printf("  Due: %s\n", created.DueDate.Format("Mon, Jan 2 2006"))
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addCategory, "category", "", "task category")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "priority (low, medium, high)")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")
	addCmd.Flags().StringVar(&addStart, "start", "", "start time (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")
	addCmd.Flags().StringVar(&addEnd, "end", "", "end time (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")
}

// parseFlagTime accepts a date or a date-time in the local timezone.
func parseFlagTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("expected YYYY-MM-DD or YYYY-MM-DDTHH:MM, got %q", value)
}
