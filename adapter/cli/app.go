package cli

import (
	"github.com/google/uuid"

	"github.com/felixgeelhaar/cadence/internal/analytics/application/commands"
	"github.com/felixgeelhaar/cadence/internal/analytics/application/queries"
	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/felixgeelhaar/cadence/internal/ingest/caldav"
)

// App holds the CLI application dependencies.
type App struct {
	// Task command handlers
	CreateTaskHandler   *commands.CreateTaskHandler
	CompleteTaskHandler *commands.CompleteTaskHandler
	DeleteTaskHandler   *commands.DeleteTaskHandler

	// Query handlers
	ListTasksHandler      *queries.ListTasksHandler
	TaskReportHandler     *queries.GetTaskReportHandler
	CalendarReportHandler *queries.GetCalendarReportHandler

	// CalDAV import, nil when not configured
	Importer *caldav.Importer

	// TaskRepo is the import sink for external events.
	TaskRepo domain.Repository

	CurrentUserID uuid.UUID
}

var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
