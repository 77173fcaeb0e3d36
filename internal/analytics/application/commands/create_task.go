// Package commands implements the write side of the task CRUD surface.
package commands

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

// ErrEmptyTitle is returned when a task is created without a title.
var ErrEmptyTitle = errors.New("task title must not be empty")

// CreateTaskCommand contains the parameters for creating a task.
type CreateTaskCommand struct {
	UserID        uuid.UUID
	Title         string
	Category      string
	Priority      string
	DueDate       *time.Time
	StartDate     *time.Time
	EndDate       *time.Time
	Collaborators []string
	Attendees     int
	RecurringID   string
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	repo domain.Repository
	now  func() time.Time
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(repo domain.Repository) *CreateTaskHandler {
	return &CreateTaskHandler{repo: repo, now: time.Now}
}

// Handle executes the CreateTaskCommand and returns the persisted task.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*domain.Task, error) {
	if cmd.Title == "" {
		return nil, ErrEmptyTitle
	}

	task := domain.Task{
		ID:                 uuid.New(),
		UserID:             cmd.UserID,
		Title:              cmd.Title,
		CreatedAt:          h.now(),
		DueDate:            cmd.DueDate,
		StartDate:          cmd.StartDate,
		EndDate:            cmd.EndDate,
		Category:           cmd.Category,
		Priority:           domain.ParsePriority(cmd.Priority),
		Collaborators:      cmd.Collaborators,
		Attendees:          cmd.Attendees,
		RecurringPatternID: cmd.RecurringID,
	}

	if err := h.repo.Save(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
