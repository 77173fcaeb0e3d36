package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/reportstore"
)

type stubRepo struct {
	tasks []domain.Task
	err   error
}

func (s *stubRepo) Save(context.Context, *domain.Task) error { return nil }
func (s *stubRepo) GetByID(context.Context, uuid.UUID) (*domain.Task, error) {
	return nil, errors.New("not implemented")
}
func (s *stubRepo) ListByUser(context.Context, uuid.UUID) ([]domain.Task, error) {
	return s.tasks, s.err
}
func (s *stubRepo) ListScheduled(context.Context, uuid.UUID) ([]domain.Task, error) {
	return s.tasks, s.err
}
func (s *stubRepo) Delete(context.Context, uuid.UUID) error { return nil }

type capturePublisher struct {
	published map[string][]byte
	err       error
}

func (c *capturePublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	if c.err != nil {
		return c.err
	}
	if c.published == nil {
		c.published = make(map[string][]byte)
	}
	c.published[routingKey] = payload
	return nil
}

func (c *capturePublisher) Close() error { return nil }

type captureStore struct {
	reports map[reportstore.Kind]any
}

func (c *captureStore) Put(_ context.Context, _ uuid.UUID, kind reportstore.Kind, report any) error {
	if c.reports == nil {
		c.reports = make(map[reportstore.Kind]any)
	}
	c.reports[kind] = report
	return nil
}

func TestRecomputer_RunOnce(t *testing.T) {
	userID := uuid.New()
	start := time.Now().Add(24 * time.Hour)
	repo := &stubRepo{tasks: []domain.Task{
		{ID: uuid.New(), UserID: userID, Title: "done", Completed: true, CreatedAt: time.Now().Add(-time.Hour)},
		{ID: uuid.New(), UserID: userID, Title: "meeting", CreatedAt: time.Now().Add(-2 * time.Hour), StartDate: &start},
	}}
	publisher := &capturePublisher{}
	store := &captureStore{}

	rec := NewRecomputer(repo, publisher, store, userID, time.Minute, nil)
	require.NoError(t, rec.RunOnce(context.Background()))

	// Both report kinds were stored.
	assert.Contains(t, store.reports, reportstore.KindTasks)
	assert.Contains(t, store.reports, reportstore.KindCalendar)

	// Both events went out with a decodable envelope.
	require.Contains(t, publisher.published, eventbus.RoutingKeyTaskReport)
	require.Contains(t, publisher.published, eventbus.RoutingKeyCalendarReport)

	var event struct {
		UserID uuid.UUID       `json:"userId"`
		Kind   string          `json:"kind"`
		Report json.RawMessage `json:"report"`
	}
	require.NoError(t, json.Unmarshal(publisher.published[eventbus.RoutingKeyTaskReport], &event))
	assert.Equal(t, userID, event.UserID)
	assert.Equal(t, "tasks", event.Kind)
	assert.NotEmpty(t, event.Report)
}

func TestRecomputer_RunOnce_NoStore(t *testing.T) {
	publisher := &capturePublisher{}

	rec := NewRecomputer(&stubRepo{}, publisher, nil, uuid.New(), time.Minute, nil)
	require.NoError(t, rec.RunOnce(context.Background()))

	assert.Len(t, publisher.published, 2)
}

func TestRecomputer_RunOnce_RepositoryError(t *testing.T) {
	repo := &stubRepo{err: errors.New("db down")}
	publisher := &capturePublisher{}

	rec := NewRecomputer(repo, publisher, nil, uuid.New(), time.Minute, nil)
	err := rec.RunOnce(context.Background())

	assert.Error(t, err)
	assert.Empty(t, publisher.published)
}

func TestRecomputer_RunOnce_PublishError(t *testing.T) {
	publisher := &capturePublisher{err: errors.New("broker down")}

	rec := NewRecomputer(&stubRepo{}, publisher, nil, uuid.New(), time.Minute, nil)
	assert.Error(t, rec.RunOnce(context.Background()))
}

func TestRecomputer_RunLoopStops(t *testing.T) {
	publisher := &capturePublisher{}
	rec := NewRecomputer(&stubRepo{}, publisher, nil, uuid.New(), 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rec.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return rec.GetStats().Runs >= 1
	}, time.Second, 5*time.Millisecond)
	assert.True(t, rec.GetStats().IsRunning)

	cancel()
	<-done
	assert.False(t, rec.GetStats().IsRunning)
}
