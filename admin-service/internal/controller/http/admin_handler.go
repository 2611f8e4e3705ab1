package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/director74/dz9_gateway/admin-service/internal/entity"
	"github.com/director74/dz9_gateway/admin-service/internal/usecase"
	"github.com/director74/dz9_gateway/pkg/auth"
	"github.com/director74/dz9_gateway/pkg/errors"
)

// AdminHandler обработчик HTTP запросов административного сервиса
type AdminHandler struct {
	authUseCase    *usecase.AuthUseCase
	proxyUseCase   *usecase.ProxyUseCase
	authMiddleware *auth.ServiceAuthMiddleware
}

// NewAdminHandler создает новый обработчик административного API
func NewAdminHandler(authUseCase *usecase.AuthUseCase, proxyUseCase *usecase.ProxyUseCase, authMiddleware *auth.ServiceAuthMiddleware) *AdminHandler {
	return &AdminHandler{
		authUseCase:    authUseCase,
		proxyUseCase:   proxyUseCase,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes регистрирует маршруты административного API
func (h *AdminHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.HealthCheck)
	router.POST("/login", h.Login)

	authorized := router.Group("/")
	authorized.Use(h.authMiddleware.Required())
	{
		// Каталог товаров
		authorized.GET("/products", h.proxy("inventory", "/products"))
		authorized.GET("/products/:id", h.proxyWithID("inventory", "/products"))
		authorized.POST("/products", h.proxy("inventory", "/products"))
		authorized.PUT("/products", h.proxy("inventory", "/products"))
		authorized.DELETE("/products/:id", h.proxyWithID("inventory", "/products"))

		// Заказы
		authorized.GET("/orders", h.proxy("order", "/orders"))
		authorized.GET("/orders/:id", h.proxyWithID("order", "/orders"))
		authorized.PUT("/orders/:id/cancel", h.proxyWithSuffix("order", "/orders", "/cancel"))
		authorized.DELETE("/orders/:id", h.proxyWithID("order", "/orders"))

		// Платежи
		authorized.GET("/payments", h.proxy("payment", "/payments"))
		authorized.GET("/payments/:id", h.proxyWithID("payment", "/payments"))
		authorized.DELETE("/payments/:id", h.proxyWithID("payment", "/payments"))

		// Журнал аудита шлюза
		authorized.GET("/logs", h.GatewayLogs)
	}
}

// Login аутентифицирует оператора и выдает сессионный токен
func (h *AdminHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if !errors.BindJSON(c, &req) {
		return
	}

	resp, err := h.authUseCase.Login(req)
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GatewayLogs возвращает журнал аудита шлюза
func (h *AdminHandler) GatewayLogs(c *gin.Context) {
	resp, err := h.proxyUseCase.GatewayLogs(c.Request.Context(), c.Request.URL.RawQuery)
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.Data(resp.StatusCode, "application/json", resp.Body)
}

// HealthCheck проверка работоспособности сервиса
func (h *AdminHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, entity.StatusResponse{Status: "ok", Message: "Admin service is running"})
}

// proxy пробрасывает запрос в бэкенд по фиксированному пути
func (h *AdminHandler) proxy(backendName, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.forward(c, backendName, path)
	}
}

// proxyWithID пробрасывает запрос, дополняя путь идентификатором из URL
func (h *AdminHandler) proxyWithID(backendName, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.forward(c, backendName, path+"/"+c.Param("id"))
	}
}

// proxyWithSuffix пробрасывает запрос вида /orders/:id/cancel
func (h *AdminHandler) proxyWithSuffix(backendName, path, suffix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.forward(c, backendName, path+"/"+c.Param("id")+suffix)
	}
}

func (h *AdminHandler) forward(c *gin.Context, backendName, path string) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse("не удалось прочитать тело запроса"))
		return
	}

	resp, err := h.proxyUseCase.Forward(c.Request.Context(), backendName, c.Request.Method, path, c.Request.URL.RawQuery, body)
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.Data(resp.StatusCode, "application/json", resp.Body)
}
