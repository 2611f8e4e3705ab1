package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/director74/dz9_gateway/order-service/internal/entity"
	"github.com/director74/dz9_gateway/order-service/internal/usecase"
	"github.com/director74/dz9_gateway/pkg/auth"
	"github.com/director74/dz9_gateway/pkg/errors"
)

// OrderHandler обработчик HTTP запросов сервиса заказов
type OrderHandler struct {
	orderUseCase   *usecase.OrderUseCase
	authMiddleware *auth.ServiceAuthMiddleware
}

// NewOrderHandler создает новый обработчик заказов
func NewOrderHandler(orderUseCase *usecase.OrderUseCase, authMiddleware *auth.ServiceAuthMiddleware) *OrderHandler {
	return &OrderHandler{
		orderUseCase:   orderUseCase,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes регистрирует маршруты сервиса заказов
func (h *OrderHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.HealthCheck)

	authorized := router.Group("/")
	authorized.Use(h.authMiddleware.Required())
	{
		authorized.POST("/create_order", h.CreateOrder)

		authorized.GET("/orders", h.ListOrders)
		authorized.GET("/orders/:id", h.GetOrder)
		authorized.PUT("/orders/:id/cancel", h.CancelOrder)
		authorized.DELETE("/orders/:id", h.DeleteOrder)
	}
}

// CreateOrder создает заказ
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req entity.CreateOrderRequest
	if !errors.BindJSON(c, &req) {
		return
	}

	resp, err := h.orderUseCase.CreateOrder(c.Request.Context(), req)
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOrders возвращает список заказов
func (h *OrderHandler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.orderUseCase.ListOrders(c.Request.Context(), limit, offset)
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "orders": orders})
}

// GetOrder возвращает заказ по идентификатору
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse("некорректный идентификатор заказа"))
		return
	}

	order, err := h.orderUseCase.GetOrder(c.Request.Context(), uint(id))
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "order": order})
}

// CancelOrder помечает заказ отменённым
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse("некорректный идентификатор заказа"))
		return
	}

	if err := h.orderUseCase.CancelOrder(c.Request.Context(), uint(id)); err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.StatusResponse{Status: "ok", Message: "Order cancelled"})
}

// DeleteOrder удаляет заказ
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse("некорректный идентификатор заказа"))
		return
	}

	if err := h.orderUseCase.DeleteOrder(c.Request.Context(), uint(id)); err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.StatusResponse{Status: "ok", Message: "Order deleted"})
}

// HealthCheck проверка работоспособности сервиса
func (h *OrderHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, entity.StatusResponse{Status: "ok", Message: "Order service is running"})
}
