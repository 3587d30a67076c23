// Package main содержит точку входа планировщика уведомлений о продлениях.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/license-dashboard/internal/app/scheduler"
	"github.com/magabrotheeeer/license-dashboard/internal/config"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	logger.Info("starting renewal-scheduler", slog.String("env", cfg.Env), slog.Duration("interval", cfg.Interval))
	logger.Debug("effective config", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := scheduler.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize scheduler app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("scheduler stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("renewal-scheduler stopped gracefully")
}
