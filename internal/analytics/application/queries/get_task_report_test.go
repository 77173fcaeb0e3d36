package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/cadence/internal/analytics/application/services"
	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

func TestGetTaskReportHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("generates a report over the stored tasks", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewGetTaskReportHandler(repo, services.NewTaskAnalytics(nil))

		tasks := []domain.Task{
			{ID: uuid.New(), UserID: userID, Title: "done", Completed: true, CreatedAt: time.Now().Add(-time.Hour)},
			{ID: uuid.New(), UserID: userID, Title: "open", CreatedAt: time.Now().Add(-2 * time.Hour)},
		}
		repo.On("ListByUser", mock.Anything, userID).Return(tasks, nil)

		report, err := handler.Handle(context.Background(), GetTaskReportQuery{UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, 2, report.TaskStats.Total)
		assert.Equal(t, 1, report.TaskStats.Completed)
		repo.AssertExpectations(t)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewGetTaskReportHandler(repo, services.NewTaskAnalytics(nil))

		repo.On("ListByUser", mock.Anything, userID).Return(nil, errors.New("db down"))

		_, err := handler.Handle(context.Background(), GetTaskReportQuery{UserID: userID})
		assert.Error(t, err)
	})
}

func TestGetCalendarReportHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("reports over scheduled tasks only", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewGetCalendarReportHandler(repo, nil)

		start := time.Now().Add(24 * time.Hour)
		tasks := []domain.Task{
			{ID: uuid.New(), UserID: userID, Title: "standup", CreatedAt: time.Now(), StartDate: &start},
		}
		repo.On("ListScheduled", mock.Anything, userID).Return(tasks, nil)

		report, err := handler.Handle(context.Background(), GetCalendarReportQuery{UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, 1, report.Metrics.TotalEvents)
		assert.Equal(t, 1, report.Metrics.UpcomingEvents)
		repo.AssertExpectations(t)
	})

	t.Run("passes the range through", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewGetCalendarReportHandler(repo, nil)

		inside := time.Now().Add(24 * time.Hour)
		outside := time.Now().Add(40 * 24 * time.Hour)
		tasks := []domain.Task{
			{ID: uuid.New(), UserID: userID, CreatedAt: time.Now(), StartDate: &inside},
			{ID: uuid.New(), UserID: userID, CreatedAt: time.Now(), StartDate: &outside},
		}
		repo.On("ListScheduled", mock.Anything, userID).Return(tasks, nil)

		window := &domain.DateRange{Start: time.Now(), End: time.Now().Add(7 * 24 * time.Hour)}
		report, err := handler.Handle(context.Background(), GetCalendarReportQuery{UserID: userID, Range: window})

		require.NoError(t, err)
		assert.Equal(t, 1, report.Metrics.TotalEvents)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewGetCalendarReportHandler(repo, nil)

		repo.On("ListScheduled", mock.Anything, userID).Return(nil, errors.New("db down"))

		_, err := handler.Handle(context.Background(), GetCalendarReportQuery{UserID: userID})
		assert.Error(t, err)
	})
}

func TestListTasksHandler(t *testing.T) {
	userID := uuid.New()

	repo := new(mockTaskRepo)
	handler := NewListTasksHandler(repo)

	tasks := []domain.Task{
		{ID: uuid.New(), UserID: userID, Title: "done", Completed: true},
		{ID: uuid.New(), UserID: userID, Title: "open"},
	}
	repo.On("ListByUser", mock.Anything, userID).Return(tasks, nil)

	all, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID, PendingOnly: true})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "open", pending[0].Title)
}
