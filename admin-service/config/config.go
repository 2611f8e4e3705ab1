package config

import (
	"time"

	"github.com/director74/dz9_gateway/pkg/config"
)

// BackendConfig содержит адрес и секрет подписи одного бэкенда
type BackendConfig struct {
	URL        string
	SigningKey string
}

// Config содержит конфигурацию административного сервиса
type Config struct {
	HTTP           config.HTTPConfig
	GatewayURL     string
	InternalAPIKey string
	Backends       map[string]BackendConfig

	// Учетная запись оператора и ключ подписи сессионных токенов
	AdminUsername  string
	AdminPassword  string
	SessionKey     string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
}

// NewConfig загружает конфигурацию административного сервиса.
// Секреты бэкендов совпадают с теми, что знает шлюз: админка ходит
// в бэкенды напрямую под принципалом admin.
func NewConfig() (*Config, error) {
	commonConfig := config.LoadCommonConfig("admin", "8084")

	return &Config{
		HTTP:           commonConfig.HTTP,
		GatewayURL:     config.GetEnv("GATEWAY_SERVICE_URL", "http://localhost:8080"),
		InternalAPIKey: config.GetEnv("INTERNAL_API_KEY", "internal-api-key-for-development"),
		Backends: map[string]BackendConfig{
			"inventory": {
				URL:        config.GetEnv("INVENTORY_SERVICE_URL", "http://localhost:8081"),
				SigningKey: config.GetEnv("INVENTORY_SIGNING_KEY", "inventory-secret-key"),
			},
			"order": {
				URL:        config.GetEnv("ORDER_SERVICE_URL", "http://localhost:8082"),
				SigningKey: config.GetEnv("ORDER_SIGNING_KEY", "order-secret-key"),
			},
			"payment": {
				URL:        config.GetEnv("PAYMENT_SERVICE_URL", "http://localhost:8083"),
				SigningKey: config.GetEnv("PAYMENT_SIGNING_KEY", "payment-secret-key"),
			},
		},
		AdminUsername:  config.GetEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  config.GetEnv("ADMIN_PASSWORD", "admin123"),
		SessionKey:     config.GetEnv("ADMIN_SESSION_KEY", "admin-session-secret-key"),
		SessionTTL:     config.GetEnvAsDuration("ADMIN_SESSION_TTL", 8*time.Hour),
		RequestTimeout: config.GetEnvAsDuration("ADMIN_REQUEST_TIMEOUT", 15*time.Second),
	}, nil
}

// BackendURLs возвращает карту имя бэкенда -> базовый URL
func (c *Config) BackendURLs() map[string]string {
	urls := make(map[string]string, len(c.Backends))
	for name, backend := range c.Backends {
		urls[name] = backend.URL
	}
	return urls
}

// BackendSecrets возвращает карту имя бэкенда -> секрет подписи
func (c *Config) BackendSecrets() map[string]string {
	secrets := make(map[string]string, len(c.Backends))
	for name, backend := range c.Backends {
		secrets[name] = backend.SigningKey
	}
	return secrets
}
