// Package scheduler собирает приложение рассылки уведомлений о продлениях.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/license-dashboard/internal/analytics"
	"github.com/magabrotheeeer/license-dashboard/internal/config"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/rabbitmq"
	analyticsservice "github.com/magabrotheeeer/license-dashboard/internal/services/analytics"
	schedulerservice "github.com/magabrotheeeer/license-dashboard/internal/services/scheduler"
	"github.com/magabrotheeeer/license-dashboard/internal/storage/repository"
)

const (
	dbReadyAttempts = 10
	dbReadyDelay    = 3 * time.Second
)

// App представляет приложение планировщика.
type App struct {
	schedulerService *schedulerservice.Service
	db               *repository.Storage
	conn             *amqp.Connection
	ch               *amqp.Channel
	logger           *slog.Logger
}

func waitForDB(ctx context.Context, db *repository.Storage, logger *slog.Logger) error {
	var err error
	for range dbReadyAttempts {
		if err = repository.CheckDatabaseReady(ctx, db); err == nil {
			return nil
		}
		logger.Warn("database not ready yet", sl.Err(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dbReadyDelay):
		}
	}
	return fmt.Errorf("database not ready after retries: %w", err)
}

// New создает новый экземпляр приложения планировщика.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	if err = waitForDB(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.NotificationsExchange, rabbitmq.RenewalQueues())
	if err != nil {
		closeResources(nil, conn, logger)
		_ = db.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	source := analyticsservice.New(db, analytics.New(cfg.Policy), logger)
	schedulerService := schedulerservice.New(
		source,
		rabbitmq.NewPublisher(ch, rabbitmq.NotificationsExchange),
		rabbitmq.RenewalRoutingKey,
		cfg.Interval,
		logger,
	)

	return &App{
		schedulerService: schedulerService,
		db:               db,
		conn:             conn,
		ch:               ch,
		logger:           logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
}

// Run запускает планировщик и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	a.schedulerService.Run(ctx)

	a.logger.Info("shutting down scheduler service")
	closeResources(a.ch, a.conn, a.logger)
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	return nil
}
