// Package caldav imports events from a CalDAV server (Apple Calendar,
// Fastmail, Nextcloud, etc.) into the task store so they feed the calendar
// analytics.
package caldav

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

// Common CalDAV server URLs.
const (
	AppleCalDAVURL    = "https://caldav.icloud.com"
	FastmailCalDAVURL = "https://caldav.fastmail.com"
)

// taskNamespace seeds the deterministic task id derived from an event UID,
// so re-importing the same event updates the stored task instead of
// duplicating it.
var taskNamespace = uuid.MustParse("b702b2c0-3b38-4fcd-9f54-24adcbc54e84")

// ImportResult summarizes one import run.
type ImportResult struct {
	Imported int
	Skipped  int
}

// Importer pulls VEVENTs from a CalDAV calendar and stores them as tasks.
// Server fetches run behind a circuit breaker so a flapping server stops
// being hammered after five consecutive failures.
type Importer struct {
	baseURL      string
	username     string
	password     string // App-specific password for Apple
	calendarPath string // Specific calendar path, or empty for default
	logger       *slog.Logger
	breaker      *gobreaker.CircuitBreaker[[]caldav.CalendarObject]
}

// NewImporter creates a CalDAV importer.
func NewImporter(baseURL, username, password string, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}

	imp := &Importer{
		baseURL:  baseURL,
		username: username,
		password: password,
		logger:   logger,
	}
	imp.breaker = gobreaker.NewCircuitBreaker[[]caldav.CalendarObject](gobreaker.Settings{
		Name:        "caldav",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return imp
}

// WithCalendarPath sets the specific calendar path to use.
func (i *Importer) WithCalendarPath(path string) *Importer {
	i.calendarPath = path
	return i
}

// Import fetches events in [start, end] and upserts them as tasks for the
// given user.
func (i *Importer) Import(ctx context.Context, repo domain.Repository, userID uuid.UUID, start, end time.Time) (*ImportResult, error) {
	objects, err := i.breaker.Execute(func() ([]caldav.CalendarObject, error) {
		return i.fetch(ctx, start, end)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return nil, fmt.Errorf("caldav server unavailable: %w", err)
		}
		return nil, err
	}

	result := &ImportResult{}
	for idx := range objects {
		task, ok := objectToTask(&objects[idx], userID)
		if !ok {
			result.Skipped++
			continue
		}
		if err := repo.Save(ctx, &task); err != nil {
			i.logger.Warn("failed to store imported event", "path", objects[idx].Path, "error", err)
			result.Skipped++
			continue
		}
		result.Imported++
	}

	i.logger.Info("caldav import finished",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"from", start.Format(time.RFC3339),
		"to", end.Format(time.RFC3339),
	)
	return result, nil
}

func (i *Importer) fetch(ctx context.Context, start, end time.Time) ([]caldav.CalendarObject, error) {
	client, err := i.getClient()
	if err != nil {
		return nil, err
	}

	calPath, err := i.findCalendarPath(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar: %w", err)
	}

	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name:  "VCALENDAR",
			Props: []string{"VERSION"},
			Comps: []caldav.CalendarCompRequest{
				{
					Name:  "VEVENT",
					Props: []string{"SUMMARY", "DTSTART", "DTEND", "DTSTAMP", "UID", "STATUS", "CATEGORIES", "ATTENDEE", "RRULE"},
				},
			},
		},
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{
					Name:  "VEVENT",
					Start: start,
					End:   end,
				},
			},
		},
	}

	objects, err := client.QueryCalendar(ctx, calPath, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar: %w", err)
	}
	return objects, nil
}

func (i *Importer) getClient() (*caldav.Client, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	client, err := caldav.NewClient(webdav.HTTPClientWithBasicAuth(httpClient, i.username, i.password), i.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	return client, nil
}

func (i *Importer) findCalendarPath(ctx context.Context, client *caldav.Client) (string, error) {
	if i.calendarPath != "" {
		return i.calendarPath, nil
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find principal: %w", err)
	}

	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return "", fmt.Errorf("failed to find calendar home set: %w", err)
	}

	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}
	if len(cals) == 0 {
		return "", fmt.Errorf("no calendars found")
	}

	// Use first calendar as default
	return cals[0].Path, nil
}

// objectToTask maps the first VEVENT of a calendar object to a task. Events
// without a UID or DTSTART cannot be placed and are skipped.
func objectToTask(obj *caldav.CalendarObject, userID uuid.UUID) (domain.Task, bool) {
	if obj == nil || obj.Data == nil {
		return domain.Task{}, false
	}

	for _, child := range obj.Data.Children {
		if child.Name != ical.CompEvent {
			continue
		}

		uid := propValue(child, ical.PropUID)
		if uid == "" {
			return domain.Task{}, false
		}

		event := &ical.Event{Component: child}
		start, err := event.DateTimeStart(time.UTC)
		if err != nil || start.IsZero() {
			return domain.Task{}, false
		}

		task := domain.Task{
			ID:        uuid.NewSHA1(taskNamespace, []byte(uid)),
			UserID:    userID,
			Title:     propValue(child, ical.PropSummary),
			Completed: propValue(child, ical.PropStatus) == "COMPLETED",
			CreatedAt: start,
			StartDate: &start,
			Category:  propValue(child, "CATEGORIES"),
			Attendees: len(child.Props["ATTENDEE"]),
		}
		if task.Title == "" {
			task.Title = uid
		}
		if stamp, err := event.Props.DateTime(ical.PropDateTimeStamp, time.UTC); err == nil && !stamp.IsZero() {
			task.CreatedAt = stamp
		}
		if end, err := event.DateTimeEnd(time.UTC); err == nil && !end.IsZero() {
			task.EndDate = &end
		}
		if rrule := propValue(child, "RRULE"); rrule != "" {
			task.RecurringPatternID = rrule
		}
		return task, true
	}
	return domain.Task{}, false
}

func propValue(c *ical.Component, name string) string {
	if props := c.Props[name]; len(props) > 0 {
		return props[0].Value
	}
	return ""
}
