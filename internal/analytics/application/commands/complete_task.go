package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

// CompleteTaskCommand marks a task as completed.
type CompleteTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// CompleteTaskHandler handles the CompleteTaskCommand.
type CompleteTaskHandler struct {
	repo domain.Repository
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler.
func NewCompleteTaskHandler(repo domain.Repository) *CompleteTaskHandler {
	return &CompleteTaskHandler{repo: repo}
}

// Handle executes the CompleteTaskCommand. Completing an already completed
// task is a no-op.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) (*domain.Task, error) {
	task, err := h.repo.GetByID(ctx, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	// Authorization check: the task must belong to the user.
	if task.UserID != cmd.UserID {
		return nil, domain.ErrNotOwned
	}
	if task.Completed {
		return task, nil
	}

	task.Completed = true
	if err := h.repo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
