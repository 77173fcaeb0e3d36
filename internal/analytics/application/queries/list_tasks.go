package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

// ListTasksQuery contains the parameters for listing a user's tasks.
type ListTasksQuery struct {
	UserID      uuid.UUID
	PendingOnly bool
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	repo domain.Repository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(repo domain.Repository) *ListTasksHandler {
	return &ListTasksHandler{repo: repo}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]domain.Task, error) {
	tasks, err := h.repo.ListByUser(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	if !query.PendingOnly {
		return tasks, nil
	}

	pending := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	return pending, nil
}
