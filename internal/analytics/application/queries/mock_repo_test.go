package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task := args.Get(0); task != nil {
		return task.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	if tasks := args.Get(0); tasks != nil {
		return tasks.([]domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskRepo) ListScheduled(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	if tasks := args.Get(0); tasks != nil {
		return tasks.([]domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
