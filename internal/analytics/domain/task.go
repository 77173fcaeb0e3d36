// Package domain contains the domain model for the analytics bounded context.
package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UncategorizedLabel is the bucket used for tasks without a category.
const UncategorizedLabel = "Uncategorized"

// Priority represents a task priority level.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority normalizes an arbitrary priority string. Unknown values map
// to PriorityNone so they stay invisible to the priority breakdown.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow
	case "medium":
		return PriorityMedium
	case "high":
		return PriorityHigh
	default:
		return PriorityNone
	}
}

// Task is the flat record both analytics engines consume. It is owned by the
// surrounding CRUD layer; the engines never mutate it.
type Task struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Completed bool

	// CreatedAt is the activity instant for all time bucketing. No separate
	// completion timestamp is tracked, so creation time stands in for it.
	CreatedAt time.Time

	DueDate   *time.Time
	StartDate *time.Time
	EndDate   *time.Time

	Category string
	Priority Priority

	Collaborators      []string
	Attendees          int
	RecurringPatternID string
}

// CategoryOrDefault returns the task category, substituting the
// uncategorized sentinel when absent.
func (t Task) CategoryOrDefault() string {
	if t.Category == "" {
		return UncategorizedLabel
	}
	return t.Category
}

// Scheduled reports whether the task carries a start or due date and can be
// treated as a calendar event.
func (t Task) Scheduled() bool {
	return t.StartDate != nil || t.DueDate != nil
}

// ErrNotOwned is returned when a task belongs to a different user.
var ErrNotOwned = errors.New("task belongs to a different user")

// Repository is the persistence port for tasks.
type Repository interface {
	Save(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Task, error)
	// ListScheduled returns the user's tasks that carry a start or due date,
	// the subset CalendarAnalytics consumes.
	ListScheduled(ctx context.Context, userID uuid.UUID) ([]Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
