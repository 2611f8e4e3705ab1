package messaging

import (
	"log"

	"github.com/director74/dz9_gateway/pkg/config"
	"github.com/director74/dz9_gateway/pkg/rabbitmq"
)

// MessagePublisher интерфейс для публикации сообщений
type MessagePublisher interface {
	PublishMessage(exchange, routingKey string, message interface{}) error
}

// InitRabbitMQ инициализирует подключение к RabbitMQ с общими параметрами
func InitRabbitMQ(cfg config.RabbitMQConfig) (*rabbitmq.RabbitMQ, error) {
	rmqCfg := rabbitmq.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		VHost:    cfg.VHost,
	}

	return rabbitmq.NewRabbitMQ(rmqCfg)
}

// PublishWithLogging публикует сообщение с логированием успеха/ошибки
func PublishWithLogging(publisher MessagePublisher, exchange, routingKey string, message interface{}) error {
	err := publisher.PublishMessage(exchange, routingKey, message)
	if err != nil {
		log.Printf("Ошибка при публикации сообщения в %s с ключом %s: %v", exchange, routingKey, err)
		return err
	}

	log.Printf("Сообщение опубликовано в %s с ключом %s", exchange, routingKey)
	return nil
}

// SetupExchanges объявляет exchanges, используемые сервисом
func SetupExchanges(broker *rabbitmq.RabbitMQ, exchanges map[string]string) error {
	for name, kind := range exchanges {
		if err := broker.DeclareExchange(name, kind); err != nil {
			return err
		}
	}
	return nil
}
