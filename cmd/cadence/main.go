package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/adapter/cli/importcmd"
	"github.com/felixgeelhaar/cadence/adapter/cli/report"
	"github.com/felixgeelhaar/cadence/adapter/cli/task"
	"github.com/felixgeelhaar/cadence/internal/app"
	"github.com/felixgeelhaar/cadence/pkg/config"
	"github.com/felixgeelhaar/cadence/pkg/observability"
)

func main() {
	logger := observability.NewLogger(observability.DefaultLogConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development defaults", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	logCfg := observability.DefaultLogConfig()
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	if cfg.IsDevelopment() {
		logCfg.Level = observability.LogLevelDebug
	}
	logger = observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetApp(&cli.App{
		CreateTaskHandler:     container.CreateTaskHandler,
		CompleteTaskHandler:   container.CompleteTaskHandler,
		DeleteTaskHandler:     container.DeleteTaskHandler,
		ListTasksHandler:      container.ListTasksHandler,
		TaskReportHandler:     container.TaskReportHandler,
		CalendarReportHandler: container.CalendarReportHandler,
		Importer:              container.Importer,
		TaskRepo:              container.TaskRepo,
		CurrentUserID:         container.UserID,
	})

	cli.AddCommand(task.Cmd)
	cli.AddCommand(report.Cmd)
	cli.AddCommand(importcmd.Cmd)

	cli.Execute()
}
