package rabbitmq

const (
	// NotificationsExchange обменник для всех уведомлений сервиса.
	NotificationsExchange = "notifications"
	// RenewalRoutingKey ключ маршрутизации уведомлений о продлении.
	RenewalRoutingKey = "renewal"
	// RenewalQueue очередь, из которой читает рассыльщик писем.
	RenewalQueue = "renewal"
)

// QueueConfig описывает очередь и ключ, по которому она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// RenewalQueues возвращает очереди уведомлений о продлениях.
func RenewalQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: RenewalQueue, RoutingKey: RenewalRoutingKey},
	}
}
