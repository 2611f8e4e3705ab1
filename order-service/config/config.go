package config

import (
	"github.com/director74/dz9_gateway/pkg/config"
)

// Config содержит конфигурацию сервиса заказов
type Config struct {
	HTTP     config.HTTPConfig
	Postgres config.PostgresConfig
	Auth     config.ServiceAuthConfig
}

// NewConfig загружает конфигурацию сервиса заказов
func NewConfig() (*Config, error) {
	commonConfig := config.LoadCommonConfig("order", "8082")

	return &Config{
		HTTP:     commonConfig.HTTP,
		Postgres: commonConfig.Postgres,
		Auth:     *config.LoadServiceAuthConfig("ORDER", "order-secret-key"),
	}, nil
}
