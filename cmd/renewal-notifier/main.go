// Package main содержит точку входа рассыльщика писем о продлениях.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/license-dashboard/internal/app/notifier"
	"github.com/magabrotheeeer/license-dashboard/internal/config"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	logger.Info("starting renewal-notifier", slog.String("env", cfg.Env), slog.Int("recipients", len(cfg.Recipients)))
	logger.Debug("effective config", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := notifier.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize notifier app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("notifier stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("renewal-notifier stopped gracefully")
}
