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

// ResilienceConfig содержит настройки resilience-обёртки исходящих вызовов
type ResilienceConfig struct {
	RetryAttempts    int
	BackoffBase      time.Duration
	RequestTimeout   time.Duration
	FailureThreshold int
	Cooldown         time.Duration
}

// Config содержит конфигурацию шлюза оркестрации заказов
type Config struct {
	HTTP                   config.HTTPConfig
	Postgres               config.PostgresConfig
	RabbitMQ               config.RabbitMQConfig
	Backends               map[string]BackendConfig
	Resilience             ResilienceConfig
	ReconciliationExchange string
}

// NewConfig загружает конфигурацию шлюза. Адреса бэкендов — статическая
// конфигурация, service discovery отсутствует.
func NewConfig() (*Config, error) {
	commonConfig := config.LoadCommonConfig("gateway", "8080")

	return &Config{
		HTTP:     commonConfig.HTTP,
		Postgres: commonConfig.Postgres,
		RabbitMQ: commonConfig.RabbitMQ,
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
		Resilience: ResilienceConfig{
			RetryAttempts:    config.GetEnvAsInt("RETRY_ATTEMPTS", 3),
			BackoffBase:      config.GetEnvAsDuration("RETRY_BACKOFF_BASE", time.Second),
			RequestTimeout:   config.GetEnvAsDuration("BACKEND_REQUEST_TIMEOUT", 15*time.Second),
			FailureThreshold: config.GetEnvAsInt("CIRCUIT_FAILURE_THRESHOLD", 5),
			Cooldown:         config.GetEnvAsDuration("CIRCUIT_COOLDOWN", 30*time.Second),
		},
		ReconciliationExchange: config.GetEnv("RECONCILIATION_EXCHANGE", "saga_reconciliation"),
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
