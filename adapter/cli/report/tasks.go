package report

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/analytics/application/queries"
	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show the task analytics report",
	Long: `Show completion statistics, category and priority breakdowns, weekly
trends, predictions and burnout risk over all stored tasks.

Examples:
  cadence report tasks
  cadence report tasks --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.TaskReportHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		rep, err := app.TaskReportHandler.Handle(cmd.Context(), queries.GetTaskReportQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}

		if asJSON {
			return printJSON(rep)
		}

		renderTaskReport(rep)
		return nil
	},
}

func renderTaskReport(rep domain.Report) {
	fmt.Println("\n  Task Report")
	fmt.Println(strings.Repeat("=", 60))

	s := rep.TaskStats
	fmt.Println("\n  TASKS")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  Total: %d   Completed: %d   Pending: %d   Overdue: %d\n",
		s.Total, s.Completed, s.Pending, s.Overdue)
	fmt.Printf("  Completion rate: %.2f%%\n", s.CompletionRate)

	if len(rep.CategoryStats) > 0 {
		fmt.Println("\n  CATEGORIES")
		fmt.Println(strings.Repeat("-", 60))
		for _, c := range rep.CategoryStats {
			fmt.Printf("  %-20s %3d tasks  %3d%% done\n", c.Category, c.Total, c.Percentage)
		}
	}

	p := rep.ProductivityStats
	fmt.Println("\n  PRODUCTIVITY")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  Today: %d   This week: %d   This month: %d\n",
		p.CompletedToday, p.CompletedThisWeek, p.CompletedThisMonth)
	fmt.Printf("  Best day: %s   Current streak: %d days\n", p.MostProductiveDay, p.CurrentStreak)

	b := rep.Prediction.BurnoutRisk
	fmt.Println("\n  OUTLOOK")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  Next week: ~%.1f tasks (%.2f%% rate, confidence %.2f)\n",
		rep.Prediction.NextWeek.ExpectedCompleted,
		rep.Prediction.NextWeek.ExpectedRate,
		rep.Prediction.NextWeek.Confidence)
	fmt.Printf("  Burnout risk: %s (%d)\n", b.Level, b.Score)
	for _, factor := range b.Factors {
		fmt.Printf("    - %s\n", factor)
	}

	fmt.Println()
}
