package report

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/analytics/application/queries"
	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the calendar analytics report",
	Long: `Show event metrics, time patterns, insights, health score, burnout
risk and the upcoming-load forecast over your scheduled tasks.

Examples:
  cadence report calendar
  cadence report calendar --from 2025-06-01 --to 2025-06-30
  cadence report calendar --section health
  cadence report calendar --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CalendarReportHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		window, err := parseRange()
		if err != nil {
			return err
		}

		rep, err := app.CalendarReportHandler.Handle(cmd.Context(), queries.GetCalendarReportQuery{
			UserID: app.CurrentUserID,
			Range:  window,
		})
		if err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}

		if asJSON {
			if v, err := sectionValue(rep); err != nil {
				return err
			} else if v != nil {
				return printJSON(v)
			}
			return printJSON(rep)
		}

		return renderCalendarReport(rep)
	},
}

// sectionValue picks one report section for --section, nil for the full report.
func sectionValue(rep domain.CalendarReport) (any, error) {
	switch section {
	case "":
		return nil, nil
	case "metrics":
		return rep.Metrics, nil
	case "time":
		return rep.TimeAnalysis, nil
	case "insights":
		return rep.Insights, nil
	case "health":
		return rep.HealthScore, nil
	case "burnout":
		return rep.BurnoutRisk, nil
	case "forecast":
		return rep.Forecast, nil
	default:
		return nil, fmt.Errorf("unknown section %q", section)
	}
}

func renderCalendarReport(rep domain.CalendarReport) error {
	sections := map[string]func(domain.CalendarReport){
		"metrics":  renderMetrics,
		"time":     renderTimeAnalysis,
		"insights": renderInsights,
		"health":   renderHealth,
		"burnout":  renderBurnout,
		"forecast": renderForecast,
	}

	if section != "" {
		render, ok := sections[section]
		if !ok {
			return fmt.Errorf("unknown section %q", section)
		}
		render(rep)
		return nil
	}

	fmt.Println("\n  Calendar Report")
	fmt.Println(strings.Repeat("=", 60))
	for _, name := range []string{"metrics", "insights", "health", "burnout", "forecast"} {
		sections[name](rep)
	}
	fmt.Println()
	return nil
}

func renderMetrics(rep domain.CalendarReport) {
	m := rep.Metrics
	fmt.Println("\n  EVENTS")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  Total: %d   Completed: %d   Upcoming: %d   Overdue: %d\n",
		m.TotalEvents, m.CompletedEvents, m.UpcomingEvents, m.OverdueEvents)
	fmt.Printf("  Completion rate: %d%%   Avg per day: %.2f\n", m.CompletionRate, m.AverageEventsPerDay)
	fmt.Printf("  Busiest day: %s   Peak hour: %02d:00\n", m.MostProductiveDay, m.PeakHour)
}

func renderTimeAnalysis(rep domain.CalendarReport) {
	a := rep.TimeAnalysis
	fmt.Println("\n  TIME PATTERNS")
	fmt.Println(strings.Repeat("-", 60))
	for h := 0; h < 24; h++ {
		if count := a.Hourly[h]; count > 0 {
			fmt.Printf("  %02d:00  %s (%d)\n", h, strings.Repeat("#", count), count)
		}
	}
}

func renderInsights(rep domain.CalendarReport) {
	i := rep.Insights
	fmt.Println("\n  INSIGHTS")
	fmt.Println(strings.Repeat("-", 60))
	if len(i.PeakProductivityHours) > 0 {
		fmt.Printf("  Peak hours: %v\n", i.PeakProductivityHours)
	}
	fmt.Printf("  Meeting slots: %v\n", i.OptimalMeetingTimes)
	if len(i.BusyDays) > 0 {
		fmt.Printf("  Busy days: %s\n", strings.Join(i.BusyDays, ", "))
	}
	if len(i.FreeDays) > 0 {
		fmt.Printf("  Free days: %s\n", strings.Join(i.FreeDays, ", "))
	}
	fmt.Printf("  Work/life: %d work, %d personal (ratio %.2f)\n",
		i.WorkLifeBalance.WorkEvents, i.WorkLifeBalance.PersonalEvents, i.WorkLifeBalance.Ratio)
	for _, block := range i.FocusTimeBlocks {
		fmt.Printf("  Focus: %s %s-%s (%.1fh)\n", block.Day, block.StartTime, block.EndTime, block.Duration)
	}
}

func renderHealth(rep domain.CalendarReport) {
	h := rep.HealthScore
	fmt.Println("\n  HEALTH")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  Score: %d/100\n", h.Score)
	fmt.Printf("  Distribution: %d   Completion: %d   Time: %d   Collaboration: %d   Planning: %d\n",
		h.EventDistribution, h.CompletionRate, h.TimeManagement, h.Collaboration, h.Planning)
	for _, r := range h.Recommendations {
		fmt.Printf("    - %s\n", r)
	}
}

func renderBurnout(rep domain.CalendarReport) {
	b := rep.BurnoutRisk
	fmt.Println("\n  BURNOUT")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  Risk: %s (%d)\n", b.Level, b.Score)
	for _, s := range b.Suggestions {
		fmt.Printf("    - %s\n", s)
	}
}

func renderForecast(rep domain.CalendarReport) {
	f := rep.Forecast
	fmt.Println("\n  FORECAST")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  Next week load: %.1f%%   Next month load: %.1f%%\n", f.NextWeekLoad, f.NextMonthLoad)
	if len(f.PredictedBusyDays) > 0 {
		fmt.Printf("  Busy days ahead: %s\n", strings.Join(f.PredictedBusyDays, ", "))
	}
	if len(f.RecommendedBreaks) > 0 {
		fmt.Printf("  Suggested breaks: %s\n", strings.Join(f.RecommendedBreaks, ", "))
	}
	for _, c := range f.ConflictRisks {
		fmt.Printf("  Conflicts on %s: %d (%s)\n", c.Date, c.ConflictCount, strings.Join(c.Events, ", "))
	}
}
