package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

// SQLiteTaskRepository implements domain.Repository using SQLite.
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

const sqliteTaskColumns = `id, user_id, title, completed, created_at, due_date, start_date, end_date,
	category, priority, collaborators, attendees, recurring_pattern_id`

// Save inserts the task, or replaces the stored row when the id exists.
func (r *SQLiteTaskRepository) Save(ctx context.Context, t *domain.Task) error {
	collaborators, err := json.Marshal(t.Collaborators)
	if err != nil {
		return fmt.Errorf("failed to encode collaborators: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+sqliteTaskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			title = excluded.title,
			completed = excluded.completed,
			created_at = excluded.created_at,
			due_date = excluded.due_date,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			category = excluded.category,
			priority = excluded.priority,
			collaborators = excluded.collaborators,
			attendees = excluded.attendees,
			recurring_pattern_id = excluded.recurring_pattern_id`,
		t.ID.String(), t.UserID.String(), t.Title, t.Completed,
		t.CreatedAt.UTC().Format(time.RFC3339Nano),
		sqliteTime(t.DueDate), sqliteTime(t.StartDate), sqliteTime(t.EndDate),
		t.Category, string(t.Priority), string(collaborators), t.Attendees, t.RecurringPatternID,
	)
	return err
}

// GetByID retrieves a task by its ID.
func (r *SQLiteTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sqliteTaskColumns+` FROM tasks WHERE id = ?`, id.String())

	t, err := scanSQLiteTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListByUser retrieves all tasks for a user ordered by creation time.
func (r *SQLiteTaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	return r.list(ctx,
		`SELECT `+sqliteTaskColumns+` FROM tasks WHERE user_id = ? ORDER BY created_at`, userID.String())
}

// ListScheduled retrieves the user's tasks carrying a start or due date.
func (r *SQLiteTaskRepository) ListScheduled(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	return r.list(ctx,
		`SELECT `+sqliteTaskColumns+` FROM tasks
		 WHERE user_id = ? AND (start_date IS NOT NULL OR due_date IS NOT NULL)
		 ORDER BY created_at`, userID.String())
}

// Delete removes a task. Deleting a missing task returns ErrTaskNotFound.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *SQLiteTaskRepository) list(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteTask(row rowScanner) (*domain.Task, error) {
	var (
		t                        domain.Task
		id, userID               string
		createdAt                string
		dueDate, startD, endDate sql.NullString
		priority, collaborators  string
	)

	err := row.Scan(&id, &userID, &t.Title, &t.Completed, &createdAt,
		&dueDate, &startD, &endDate, &t.Category, &priority,
		&collaborators, &t.Attendees, &t.RecurringPatternID)
	if err != nil {
		return nil, err
	}

	if t.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid task id %q: %w", id, err)
	}
	if t.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	if t.DueDate, err = parseSQLiteTime(dueDate); err != nil {
		return nil, err
	}
	if t.StartDate, err = parseSQLiteTime(startD); err != nil {
		return nil, err
	}
	if t.EndDate, err = parseSQLiteTime(endDate); err != nil {
		return nil, err
	}
	t.Priority = domain.Priority(priority)
	if err := json.Unmarshal([]byte(collaborators), &t.Collaborators); err != nil {
		return nil, fmt.Errorf("invalid collaborators %q: %w", collaborators, err)
	}
	return &t, nil
}

func sqliteTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}

func parseSQLiteTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", v.String, err)
	}
	return &t, nil
}
