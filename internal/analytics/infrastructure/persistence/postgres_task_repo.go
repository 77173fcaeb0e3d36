package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

// PostgresTaskRepository implements domain.Repository using PostgreSQL.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskRepository creates a new Postgres task repository.
func NewPostgresTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

const postgresTaskColumns = `id, user_id, title, completed, created_at, due_date, start_date, end_date,
	category, priority, collaborators, attendees, recurring_pattern_id`

// Save inserts the task, or replaces the stored row when the id exists.
func (r *PostgresTaskRepository) Save(ctx context.Context, t *domain.Task) error {
	collaborators := t.Collaborators
	if collaborators == nil {
		collaborators = []string{}
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO tasks (`+postgresTaskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			title = EXCLUDED.title,
			completed = EXCLUDED.completed,
			created_at = EXCLUDED.created_at,
			due_date = EXCLUDED.due_date,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			category = EXCLUDED.category,
			priority = EXCLUDED.priority,
			collaborators = EXCLUDED.collaborators,
			attendees = EXCLUDED.attendees,
			recurring_pattern_id = EXCLUDED.recurring_pattern_id`,
		t.ID, t.UserID, t.Title, t.Completed, t.CreatedAt,
		t.DueDate, t.StartDate, t.EndDate,
		t.Category, string(t.Priority), collaborators, t.Attendees, t.RecurringPatternID,
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by its ID.
func (r *PostgresTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postgresTaskColumns+` FROM tasks WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	t, err := pgx.CollectOneRow(rows, scanPostgresTask)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByUser retrieves all tasks for a user ordered by creation time.
func (r *PostgresTaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postgresTaskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanPostgresTask)
}

// ListScheduled retrieves the user's tasks carrying a start or due date.
func (r *PostgresTaskRepository) ListScheduled(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postgresTaskColumns+` FROM tasks
		 WHERE user_id = $1 AND (start_date IS NOT NULL OR due_date IS NOT NULL)
		 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanPostgresTask)
}

// Delete removes a task. Deleting a missing task returns ErrTaskNotFound.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func scanPostgresTask(row pgx.CollectableRow) (domain.Task, error) {
	var (
		t        domain.Task
		priority string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt,
		&t.DueDate, &t.StartDate, &t.EndDate, &t.Category, &priority,
		&t.Collaborators, &t.Attendees, &t.RecurringPatternID)
	if err != nil {
		return domain.Task{}, err
	}
	t.Priority = domain.Priority(priority)
	return t, nil
}
