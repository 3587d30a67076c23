// Package notifier собирает приложение почтовых уведомлений о продлениях.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/license-dashboard/internal/config"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/smtp"
	"github.com/magabrotheeeer/license-dashboard/internal/rabbitmq"
	notifierservice "github.com/magabrotheeeer/license-dashboard/internal/services/notifier"
)

// App читает очередь продлений и рассылает письма.
type App struct {
	conn            *amqp.Connection
	ch              *amqp.Channel
	notifierService *notifierservice.Service
	workers         int
	logger          *slog.Logger
}

// New подключается к брокеру и объявляет очередь продлений.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.NotificationsExchange, rabbitmq.RenewalQueues())
	if err != nil {
		if cerr := conn.Close(); cerr != nil {
			logger.Error("failed to close connection", sl.Err(cerr))
		}
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	transport := smtp.NewTransport(cfg.Notifier, logger)

	return &App{
		conn:            conn,
		ch:              ch,
		notifierService: notifierservice.New(transport, cfg.Recipients, logger),
		workers:         cfg.Workers,
		logger:          logger,
	}, nil
}

// Run обрабатывает сообщения до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("consuming renewal notices", slog.String("queue", rabbitmq.RenewalQueue), slog.Int("workers", a.workers))
	err := rabbitmq.ConsumeMessages(ctx, a.ch, rabbitmq.RenewalQueue, a.workers, a.notifierService.HandleRenewal, a.logger)

	a.logger.Info("notifier shutting down gracefully")
	if cerr := a.ch.Close(); cerr != nil {
		a.logger.Error("failed to close channel", sl.Err(cerr))
	}
	if cerr := a.conn.Close(); cerr != nil {
		a.logger.Error("failed to close connection", sl.Err(cerr))
	}
	return err
}
