package config

import (
	"github.com/director74/dz9_gateway/pkg/config"
)

// Config содержит конфигурацию сервиса оплаты
type Config struct {
	HTTP     config.HTTPConfig
	Postgres config.PostgresConfig
	Auth     config.ServiceAuthConfig
}

// NewConfig загружает конфигурацию сервиса оплаты
func NewConfig() (*Config, error) {
	commonConfig := config.LoadCommonConfig("payment", "8083")

	return &Config{
		HTTP:     commonConfig.HTTP,
		Postgres: commonConfig.Postgres,
		Auth:     *config.LoadServiceAuthConfig("PAYMENT", "payment-secret-key"),
	}, nil
}
