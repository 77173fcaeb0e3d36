// Package importcmd implements the import command group.
package importcmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cadence/adapter/cli"
)

var (
	lookback time.Duration
	ahead    time.Duration
)

// Cmd is the import command group
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import events from external calendars",
}

var caldavCmd = &cobra.Command{
	Use:   "caldav",
	Short: "Import events from a CalDAV calendar",
	Long: `Import events from a CalDAV server (Apple Calendar, Fastmail,
Nextcloud, ...) into the task store so they feed the calendar report.

Configure the server with CALDAV_ENDPOINT, CALDAV_USERNAME and
CALDAV_PASSWORD; use an app-specific password for Apple.

Examples:
  cadence import caldav
  cadence import caldav --lookback 720h --ahead 1440h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}
		if app.Importer == nil {
			return fmt.Errorf("CalDAV is not configured, set CALDAV_ENDPOINT, CALDAV_USERNAME and CALDAV_PASSWORD")
		}

		if app.TaskRepo == nil {
			return fmt.Errorf("application not initialized")
		}

		now := time.Now()
		result, err := app.Importer.Import(cmd.Context(), app.TaskRepo, app.CurrentUserID, now.Add(-lookback), now.Add(ahead))
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("Imported %d events", result.Imported)
		if result.Skipped > 0 {
			fmt.Printf(", skipped %d", result.Skipped)
		}
		fmt.Println(".")
		return nil
	},
}

func init() {
	Cmd.AddCommand(caldavCmd)
	caldavCmd.Flags().DurationVar(&lookback, "lookback", 90*24*time.Hour, "how far back to import")
	caldavCmd.Flags().DurationVar(&ahead, "ahead", 90*24*time.Hour, "how far ahead to import")
}
