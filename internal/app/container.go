// Package app wires configuration, storage, messaging and handlers together
// for the binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/cadence/internal/analytics/application/commands"
	"github.com/felixgeelhaar/cadence/internal/analytics/application/queries"
	"github.com/felixgeelhaar/cadence/internal/analytics/application/services"
	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/felixgeelhaar/cadence/internal/analytics/infrastructure/persistence"
	"github.com/felixgeelhaar/cadence/internal/ingest/caldav"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/reportstore"
	"github.com/felixgeelhaar/cadence/pkg/config"
)

// Container holds the application's wired dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	UserID uuid.UUID

	// Storage, one of the two is set depending on the driver.
	SQLiteDB *sql.DB
	PgPool   *pgxpool.Pool

	RedisClient *redis.Client
	ReportStore *reportstore.RedisStore
	Publisher   eventbus.Publisher

	TaskRepo domain.Repository
	Importer *caldav.Importer

	// Command handlers
	CreateTaskHandler   *commands.CreateTaskHandler
	CompleteTaskHandler *commands.CompleteTaskHandler
	DeleteTaskHandler   *commands.DeleteTaskHandler

	// Query handlers
	ListTasksHandler      *queries.ListTasksHandler
	TaskReportHandler     *queries.GetTaskReportHandler
	CalendarReportHandler *queries.GetCalendarReportHandler
}

// NewContainer builds the full dependency graph from configuration.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid CADENCE_USER_ID: %w", err)
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		UserID:    userID,
		Publisher: eventbus.NoopPublisher{},
	}

	if err := c.connectStorage(ctx); err != nil {
		return nil, err
	}
	c.connectRedis(ctx)
	if err := c.connectRabbitMQ(); err != nil {
		c.Close()
		return nil, err
	}

	if cfg.CalDAVEndpoint != "" {
		c.Importer = caldav.NewImporter(cfg.CalDAVEndpoint, cfg.CalDAVUsername, cfg.CalDAVPassword, logger)
		if cfg.CalDAVCalendar != "" {
			c.Importer = c.Importer.WithCalendarPath(cfg.CalDAVCalendar)
		}
	}

	c.CreateTaskHandler = commands.NewCreateTaskHandler(c.TaskRepo)
	c.CompleteTaskHandler = commands.NewCompleteTaskHandler(c.TaskRepo)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(c.TaskRepo)
	c.ListTasksHandler = queries.NewListTasksHandler(c.TaskRepo)
	c.TaskReportHandler = queries.NewGetTaskReportHandler(c.TaskRepo, services.NewTaskAnalytics(logger))
	c.CalendarReportHandler = queries.NewGetCalendarReportHandler(c.TaskRepo, logger)

	return c, nil
}

func (c *Container) connectStorage(ctx context.Context) error {
	cfg := c.Config

	switch database.Driver(cfg.DatabaseDriver) {
	case database.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open SQLite: %w", err)
		}
		if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.SQLiteDB = db
		c.TaskRepo = persistence.NewSQLiteTaskRepository(db)
		c.Logger.Info("using SQLite storage", "path", cfg.SQLitePath)

	case database.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.PgPool = pool
		c.TaskRepo = persistence.NewPostgresTaskRepository(pool)
		c.Logger.Info("using Postgres storage")

	default:
		return fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
	return nil
}

// connectRedis is best-effort: the report store is an optional sink and its
// absence never blocks the CLI.
func (c *Container) connectRedis(ctx context.Context) {
	cfg := c.Config
	if !cfg.ReportStoreEnable || cfg.RedisURL == "" {
		return
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid Redis URL, report store disabled", "error", err)
		return
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("Redis not available, report store disabled", "error", err)
		_ = client.Close()
		return
	}

	c.RedisClient = client
	c.ReportStore = reportstore.NewRedisStore(client, cfg.ReportTTL, c.Logger)
	c.Logger.Info("connected to Redis")
}

func (c *Container) connectRabbitMQ() error {
	cfg := c.Config
	if cfg.RabbitMQURL == "" {
		return nil
	}

	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.ReportsExchange, c.Logger)
	if err != nil {
		if cfg.IsDevelopment() {
			c.Logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
			return nil
		}
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	c.Publisher = publisher
	return nil
}

// Close releases every held connection.
func (c *Container) Close() {
	if c.Publisher != nil {
		_ = c.Publisher.Close()
	}
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.SQLiteDB != nil {
		_ = c.SQLiteDB.Close()
	}
	if c.PgPool != nil {
		c.PgPool.Close()
	}
}
