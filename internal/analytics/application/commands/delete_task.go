package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

// DeleteTaskCommand removes a task.
type DeleteTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	repo domain.Repository
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(repo domain.Repository) *DeleteTaskHandler {
	return &DeleteTaskHandler{repo: repo}
}

// Handle executes the DeleteTaskCommand.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) error {
	task, err := h.repo.GetByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}
	if task.UserID != cmd.UserID {
		return domain.ErrNotOwned
	}
	return h.repo.Delete(ctx, cmd.TaskID)
}
