// Package main License Dashboard API
//
// @title           License Dashboard API
// @version         1.0
// @description     API учёта программных лицензий и аналитики затрат

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/license-dashboard/internal/app/licensedashboard"
	"github.com/magabrotheeeer/license-dashboard/internal/config"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
)

//go:generate swag init -d ../../ -g cmd/license-dashboard/main.go -o ../../internal/http/docs --outputTypes go

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	logger.Info("starting license-dashboard", slog.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")
	logger.Debug("effective config", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := licensedashboard.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("license-dashboard stopped gracefully")
}
