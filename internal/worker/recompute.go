package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/cadence/internal/analytics/application/services"
	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/reportstore"
)

// ReportStore is the sink for recomputed reports. Satisfied by
// reportstore.RedisStore.
type ReportStore interface {
	Put(ctx context.Context, userID uuid.UUID, kind reportstore.Kind, report any) error
}

// Stats is a snapshot of the recompute loop.
type Stats struct {
	IsRunning bool
	Runs      int64
	Failures  int64
	LastRunAt time.Time
	LastError string
	LastErrAt time.Time
}

// Recomputer regenerates both reports on an interval and publishes the
// results. The report store is optional; when nil only events go out.
type Recomputer struct {
	repo      domain.Repository
	analytics *services.TaskAnalytics
	publisher eventbus.Publisher
	store     ReportStore
	userID    uuid.UUID
	interval  time.Duration
	logger    *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// NewRecomputer creates a recompute loop for one user's reports.
func NewRecomputer(
	repo domain.Repository,
	publisher eventbus.Publisher,
	store ReportStore,
	userID uuid.UUID,
	interval time.Duration,
	logger *slog.Logger,
) *Recomputer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recomputer{
		repo:      repo,
		analytics: services.NewTaskAnalytics(logger),
		publisher: publisher,
		store:     store,
		userID:    userID,
		interval:  interval,
		logger:    logger,
	}
}

// Run blocks, recomputing on each tick until the context is cancelled. The
// first run happens immediately.
func (r *Recomputer) Run(ctx context.Context) {
	r.setRunning(true)
	defer r.setRunning(false)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.runAndRecord(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runAndRecord(ctx)
		}
	}
}

func (r *Recomputer) runAndRecord(ctx context.Context) {
	if err := r.RunOnce(ctx); err != nil {
		r.logger.Error("recompute run failed", "error", err)
		r.mu.Lock()
		r.stats.Failures++
		r.stats.LastError = err.Error()
		r.stats.LastErrAt = time.Now()
		r.mu.Unlock()
		return
	}
	r.mu.Lock()
	r.stats.Runs++
	r.stats.LastRunAt = time.Now()
	r.mu.Unlock()
}

// RunOnce regenerates the task and calendar reports and fans them out.
func (r *Recomputer) RunOnce(ctx context.Context) error {
	tasks, err := r.repo.ListByUser(ctx, r.userID)
	if err != nil {
		RecomputeFailures.WithLabelValues("load").Inc()
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	TasksObserved.Set(float64(len(tasks)))

	start := time.Now()
	taskReport := r.analytics.Generate(tasks)
	ReportDuration.WithLabelValues(string(reportstore.KindTasks)).Observe(time.Since(start).Seconds())
	ReportsGenerated.WithLabelValues(string(reportstore.KindTasks)).Inc()

	start = time.Now()
	calendar := services.NewCalendarAnalytics(r.logger)
	calendar.Load(tasks)
	calendarReport := calendar.Report(nil)
	ReportDuration.WithLabelValues(string(reportstore.KindCalendar)).Observe(time.Since(start).Seconds())
	ReportsGenerated.WithLabelValues(string(reportstore.KindCalendar)).Inc()

	if r.store != nil {
		if err := r.store.Put(ctx, r.userID, reportstore.KindTasks, taskReport); err != nil {
			RecomputeFailures.WithLabelValues("store").Inc()
			return err
		}
		if err := r.store.Put(ctx, r.userID, reportstore.KindCalendar, calendarReport); err != nil {
			RecomputeFailures.WithLabelValues("store").Inc()
			return err
		}
	}

	if err := r.publish(ctx, eventbus.RoutingKeyTaskReport, reportstore.KindTasks, taskReport); err != nil {
		return err
	}
	if err := r.publish(ctx, eventbus.RoutingKeyCalendarReport, reportstore.KindCalendar, calendarReport); err != nil {
		return err
	}

	r.logger.Debug("recompute finished", "user_id", r.userID, "tasks", len(tasks))
	return nil
}

// GetStats returns a snapshot of the loop's counters.
func (r *Recomputer) GetStats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *Recomputer) setRunning(running bool) {
	r.mu.Lock()
	r.stats.IsRunning = running
	r.mu.Unlock()
}

type reportEvent struct {
	UserID      uuid.UUID `json:"userId"`
	Kind        string    `json:"kind"`
	GeneratedAt time.Time `json:"generatedAt"`
	Report      any       `json:"report"`
}

func (r *Recomputer) publish(ctx context.Context, routingKey string, kind reportstore.Kind, report any) error {
	payload, err := json.Marshal(reportEvent{
		UserID:      r.userID,
		Kind:        string(kind),
		GeneratedAt: time.Now().UTC(),
		Report:      report,
	})
	if err != nil {
		RecomputeFailures.WithLabelValues("encode").Inc()
		return fmt.Errorf("failed to encode %s report event: %w", kind, err)
	}
	if err := r.publisher.Publish(ctx, routingKey, payload); err != nil {
		RecomputeFailures.WithLabelValues("publish").Inc()
		return fmt.Errorf("failed to publish %s report event: %w", kind, err)
	}
	return nil
}
