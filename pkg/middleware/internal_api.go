package middleware

import (
	"net"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// InternalAPIConfig конфигурация доступа к операционным endpoint'ам
// (журнал аудита и прочие внутренние API без пользовательской авторизации)
type InternalAPIConfig struct {
	// TrustedNetworks список доверенных CIDR диапазонов
	TrustedNetworks []string
	// APIKeyEnvName имя переменной окружения с ключом API
	APIKeyEnvName string
	// DefaultAPIKey ключ по умолчанию, если не задан через переменные окружения
	DefaultAPIKey string
	// HeaderName имя заголовка для передачи ключа API
	HeaderName string
}

// NewInternalAPIConfig создает конфигурацию по умолчанию
func NewInternalAPIConfig() *InternalAPIConfig {
	return &InternalAPIConfig{
		TrustedNetworks: []string{
			"10.0.0.0/8",     // внутренняя сеть Kubernetes
			"172.16.0.0/12",  // сеть Docker по умолчанию
			"192.168.0.0/16", // локальная сеть
			"127.0.0.0/8",    // локальный хост
		},
		APIKeyEnvName: "INTERNAL_API_KEY",
		DefaultAPIKey: "internal-api-key-for-development",
		HeaderName:    "X-Internal-API-Key",
	}
}

// InternalAuthMiddleware ограничивает доступ к внутренним API доверенной сетью
type InternalAuthMiddleware struct {
	config *InternalAPIConfig
	apiKey string
}

// NewInternalAuthMiddleware создает новый middleware для внутренних API
func NewInternalAuthMiddleware(config *InternalAPIConfig) *InternalAuthMiddleware {
	if config == nil {
		config = NewInternalAPIConfig()
	}

	apiKey := os.Getenv(config.APIKeyEnvName)
	if apiKey == "" {
		apiKey = config.DefaultAPIKey
	}

	return &InternalAuthMiddleware{
		config: config,
		apiKey: apiKey,
	}
}

// Required пропускает запрос при корректном API ключе либо при обращении
// из доверенной сети; всем остальным отдаётся 403
func (m *InternalAuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		headerKey := c.GetHeader(m.config.HeaderName)
		if headerKey == m.apiKey {
			c.Next()
			return
		}

		if isIPTrusted(c.ClientIP(), m.config.TrustedNetworks) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "доступ разрешён только из доверенной сети",
		})
	}
}

// isIPTrusted проверяет, входит ли IP-адрес в список доверенных сетей
func isIPTrusted(ipStr string, trustedNetworks []string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}

	for _, network := range trustedNetworks {
		_, ipNet, err := net.ParseCIDR(network)
		if err != nil {
			continue
		}
		if ipNet.Contains(ip) {
			return true
		}
	}

	return false
}
