package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/director74/dz9_gateway/payment-service/internal/entity"
	"github.com/director74/dz9_gateway/payment-service/internal/usecase"
	"github.com/director74/dz9_gateway/pkg/auth"
	"github.com/director74/dz9_gateway/pkg/errors"
)

// PaymentHandler обработчик HTTP запросов сервиса оплаты
type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
	authMiddleware *auth.ServiceAuthMiddleware
}

// NewPaymentHandler создает новый обработчик платежей
func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase, authMiddleware *auth.ServiceAuthMiddleware) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes регистрирует маршруты сервиса оплаты
func (h *PaymentHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.HealthCheck)

	authorized := router.Group("/")
	authorized.Use(h.authMiddleware.Required())
	{
		authorized.POST("/process_payment", h.ProcessPayment)

		authorized.GET("/payments", h.ListPayments)
		authorized.GET("/payments/:id", h.GetPayment)
		authorized.DELETE("/payments/:id", h.DeletePayment)
	}
}

// ProcessPayment проводит платеж
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req entity.ProcessPaymentRequest
	if !errors.BindJSON(c, &req) {
		return
	}

	resp, err := h.paymentUseCase.ProcessPayment(c.Request.Context(), req)
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListPayments возвращает список платежей
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	payments, err := h.paymentUseCase.ListPayments(c.Request.Context(), limit, offset)
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "payments": payments})
}

// GetPayment возвращает платеж по идентификатору
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse("некорректный идентификатор платежа"))
		return
	}

	payment, err := h.paymentUseCase.GetPayment(c.Request.Context(), uint(id))
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "payment": payment})
}

// DeletePayment удаляет платеж
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse("некорректный идентификатор платежа"))
		return
	}

	if err := h.paymentUseCase.DeletePayment(c.Request.Context(), uint(id)); err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.StatusResponse{Status: "ok", Message: "Payment deleted"})
}

// HealthCheck проверка работоспособности сервиса
func (h *PaymentHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, entity.StatusResponse{Status: "ok", Message: "Payment service is running"})
}
