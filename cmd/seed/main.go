// Package main заполняет базу демонстрационными лицензиями.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/license-dashboard/internal/analytics"
	"github.com/magabrotheeeer/license-dashboard/internal/config"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/migrations"
	"github.com/magabrotheeeer/license-dashboard/internal/seed"
	"github.com/magabrotheeeer/license-dashboard/internal/storage/repository"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	if _, err = seed.Run(ctx, db, analytics.New(cfg.Policy), logger); err != nil {
		logger.Error("seeding failed", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("database seeding completed")
}
