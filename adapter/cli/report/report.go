// Package report implements the report command group.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

var (
	asJSON  bool
	fromStr string
	toStr   string
	section string
)

// Cmd is the report command group
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Generate analytics reports",
	Long:  `Generate task and calendar analytics reports over your stored tasks.`,
}

func init() {
	Cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "emit the raw report as JSON")
	Cmd.AddCommand(tasksCmd)
	Cmd.AddCommand(calendarCmd)

	calendarCmd.Flags().StringVar(&fromStr, "from", "", "range start (YYYY-MM-DD)")
	calendarCmd.Flags().StringVar(&toStr, "to", "", "range end (YYYY-MM-DD)")
	calendarCmd.Flags().StringVar(&section, "section", "",
		"single section to print (metrics, time, insights, health, burnout, forecast)")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseRange builds the optional query range from --from/--to. A missing end
// defaults to now, a missing start leaves the range nil.
func parseRange() (*domain.DateRange, error) {
	if fromStr == "" && toStr == "" {
		return nil, nil
	}

	r := &domain.DateRange{End: time.Now()}
	if fromStr != "" {
		t, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid --from: %w", err)
		}
		r.Start = t
	}
	if toStr != "" {
		t, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid --to: %w", err)
		}
		// Inclusive end of day.
		r.End = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if r.End.Before(r.Start) {
		return nil, fmt.Errorf("--to is before --from")
	}
	return r, nil
}
