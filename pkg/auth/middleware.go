package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ServiceAuthMiddleware middleware для проверки межсервисного JWT токена
type ServiceAuthMiddleware struct {
	verifier *ServiceTokenVerifier
}

// NewServiceAuthMiddleware создает новый middleware для проверки сервисной авторизации
func NewServiceAuthMiddleware(verifier *ServiceTokenVerifier) *ServiceAuthMiddleware {
	return &ServiceAuthMiddleware{
		verifier: verifier,
	}
}

// Required middleware требует валидный сервисный токен для доступа к endpoint.
// Ошибки аутентификации всегда отдаются с кодом 401 и телом
// {status: error, message: Unauthorized}, чтобы вызывающая сторона могла
// отличить их от бизнес-ошибок со статусом 400.
func (m *ServiceAuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.reject(c)
			return
		}

		// Проверяем формат заголовка "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.reject(c)
			return
		}

		claims, err := m.verifier.Verify(parts[1])
		if err != nil {
			m.reject(c)
			return
		}

		// Кладём принципала в контекст для логирования и аудита
		c.Set("service", claims.Service)

		c.Next()
	}
}

func (m *ServiceAuthMiddleware) reject(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": "Unauthorized",
	})
}

// GetService возвращает принципала сервисного токена из контекста запроса
func GetService(c *gin.Context) string {
	service, exists := c.Get("service")
	if !exists {
		return ""
	}
	return service.(string)
}
