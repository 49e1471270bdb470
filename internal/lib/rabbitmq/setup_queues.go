package rabbitmq

// Exchange обменник доменных событий.
const Exchange = "finance.events"

// QueueConfig описывает очередь и ключ её привязки к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetEventQueues возвращает очереди, в которые раскладываются события.
func GetEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "finance.subscriptions", RoutingKey: "subscription.*"},
		{QueueName: "finance.settlements", RoutingKey: "account.settled"},
	}
}
