// Package queries implements the read side: report generation over stored tasks.
package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/cadence/internal/analytics/application/services"
	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

// GetTaskReportQuery requests the full task analytics report for a user.
type GetTaskReportQuery struct {
	UserID uuid.UUID
}

// GetTaskReportHandler handles the GetTaskReportQuery.
type GetTaskReportHandler struct {
	repo      domain.Repository
	analytics *services.TaskAnalytics
}

// NewGetTaskReportHandler creates a new GetTaskReportHandler.
func NewGetTaskReportHandler(repo domain.Repository, analytics *services.TaskAnalytics) *GetTaskReportHandler {
	return &GetTaskReportHandler{repo: repo, analytics: analytics}
}

// Handle loads the user's tasks and runs the full report pipeline.
func (h *GetTaskReportHandler) Handle(ctx context.Context, query GetTaskReportQuery) (domain.Report, error) {
	tasks, err := h.repo.ListByUser(ctx, query.UserID)
	if err != nil {
		return domain.Report{}, err
	}
	return h.analytics.Generate(tasks), nil
}
