package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
)

// ConsumeChannel — часть amqp.Channel, нужная потребителю.
type ConsumeChannel interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// ConsumeMessages читает очередь queue и передаёт тело каждого сообщения
// handler, обрабатывая не больше workers сообщений одновременно. Успешно
// обработанное сообщение подтверждается, ошибка возвращает его в очередь.
// Блокируется до отмены ctx или закрытия канала доставки.
func ConsumeMessages(ctx context.Context, ch ConsumeChannel, queue string, workers int, handler func([]byte) error, log *slog.Logger) error {
	const op = "rabbitmq.ConsumeMessages"
	if workers < 1 {
		workers = 1
	}

	deliveries, err := ch.Consume(
		queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	sem := make(chan struct{}, workers)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			sem <- struct{}{}
			wg.Add(1)
			go func(d amqp.Delivery) {
				defer wg.Done()
				defer func() { <-sem }()
				if err := handler(d.Body); err != nil {
					log.Warn("message handling failed, requeueing", slog.String("queue", queue), sl.Err(err))
					if nackErr := d.Nack(false, true); nackErr != nil {
						log.Error("failed to nack message", sl.Err(nackErr))
					}
					return
				}
				if ackErr := d.Ack(false); ackErr != nil {
					log.Error("failed to ack message", sl.Err(ackErr))
				}
			}(d)
		}
	}
}
