package queries

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/cadence/internal/analytics/application/services"
	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

// GetCalendarReportQuery requests the calendar analytics report for a user,
// optionally restricted to a date range.
type GetCalendarReportQuery struct {
	UserID uuid.UUID
	Range  *domain.DateRange
}

// GetCalendarReportHandler handles the GetCalendarReportQuery.
type GetCalendarReportHandler struct {
	repo   domain.Repository
	logger *slog.Logger
}

// NewGetCalendarReportHandler creates a new GetCalendarReportHandler.
func NewGetCalendarReportHandler(repo domain.Repository, logger *slog.Logger) *GetCalendarReportHandler {
	return &GetCalendarReportHandler{repo: repo, logger: logger}
}

// Handle loads the user's scheduled tasks into a fresh engine and runs every
// calendar query against that one snapshot.
func (h *GetCalendarReportHandler) Handle(ctx context.Context, query GetCalendarReportQuery) (domain.CalendarReport, error) {
	tasks, err := h.repo.ListScheduled(ctx, query.UserID)
	if err != nil {
		return domain.CalendarReport{}, err
	}

	analytics := services.NewCalendarAnalytics(h.logger)
	analytics.Load(tasks)
	return analytics.Report(query.Range), nil
}
