package config

import (
	"github.com/director74/dz9_gateway/pkg/config"
)

// Config содержит конфигурацию сервиса склада
type Config struct {
	HTTP     config.HTTPConfig
	Postgres config.PostgresConfig
	Auth     config.ServiceAuthConfig
}

// NewConfig загружает конфигурацию сервиса склада
func NewConfig() (*Config, error) {
	commonConfig := config.LoadCommonConfig("inventory", "8081")

	return &Config{
		HTTP:     commonConfig.HTTP,
		Postgres: commonConfig.Postgres,
		Auth:     *config.LoadServiceAuthConfig("INVENTORY", "inventory-secret-key"),
	}, nil
}
