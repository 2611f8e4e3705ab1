package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/director74/dz9_gateway/gateway-service/internal/entity"
	"github.com/director74/dz9_gateway/pkg/errors"
	"github.com/director74/dz9_gateway/pkg/middleware"
)

// Orchestrator запускает сагу оформления заказа
type Orchestrator interface {
	ProcessOrder(ctx context.Context, requestID string, req entity.CheckoutRequest) *entity.CheckoutResult
}

// AuditLogger пишет и читает журнал аудита
type AuditLogger interface {
	LogStarted(ctx context.Context, requestID, clientIP, endpoint, method string, request interface{})
	LogCompleted(ctx context.Context, requestID, clientIP, endpoint, method string, request, response interface{})
	LogFailed(ctx context.Context, requestID, clientIP, endpoint, method string, request, response interface{})
	List(ctx context.Context, limit int) ([]entity.AuditLog, error)
}

// GatewayHandler входная точка шлюза
type GatewayHandler struct {
	orchestrator Orchestrator
	audit        AuditLogger
	internalAPI  *middleware.InternalAuthMiddleware
}

func NewGatewayHandler(orchestrator Orchestrator, audit AuditLogger, internalAPI *middleware.InternalAuthMiddleware) *GatewayHandler {
	return &GatewayHandler{
		orchestrator: orchestrator,
		audit:        audit,
		internalAPI:  internalAPI,
	}
}

func (h *GatewayHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/process_order", h.ProcessOrder)
	router.GET("/health", h.HealthCheck)

	// Операционный endpoint без пользовательской авторизации,
	// доступ ограничен доверенной сетью
	admin := router.Group("/admin")
	admin.Use(h.internalAPI.Required())
	{
		admin.GET("/logs", h.GetLogs)
	}
}

// ProcessOrder принимает checkout и проводит его через сагу.
// 200 — все шаги успешны, 400 — ошибка валидации либо отказ любого шага;
// 5xx зарезервированы за собственными сбоями шлюза.
func (h *GatewayHandler) ProcessOrder(c *gin.Context) {
	var req entity.CheckoutRequest
	if !errors.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	requestID := uuid.NewString()
	clientIP := c.ClientIP()

	h.audit.LogStarted(ctx, requestID, clientIP, "/process_order", "POST", req)

	if err := req.Validate(); err != nil {
		// Ошибка валидации: к бэкендам не обращаемся
		response := errors.ErrorResponse(err.Error())
		h.audit.LogFailed(ctx, requestID, clientIP, "/process_order", "POST", req, response)
		c.JSON(http.StatusBadRequest, response)
		return
	}

	result := h.orchestrator.ProcessOrder(ctx, requestID, req)

	if !result.Success {
		response := errors.ErrorResponse(result.Message)
		h.audit.LogFailed(ctx, requestID, clientIP, "/process_order", "POST", req, response)
		c.JSON(http.StatusBadRequest, response)
		return
	}

	response := entity.CheckoutResponse{
		Status:    "success",
		Message:   result.Message,
		OrderID:   result.OrderID,
		PaymentID: result.PaymentID,
	}
	h.audit.LogCompleted(ctx, requestID, clientIP, "/process_order", "POST", req, response)
	c.JSON(http.StatusOK, response)
}

// HealthCheck сообщает живость шлюза; оркестратор, авторизация и журнал
// аудита не затрагиваются
func (h *GatewayHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Gateway is running",
	})
}

// GetLogs возвращает записи журнала аудита, новые первыми
func (h *GatewayHandler) GetLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	records, listErr := h.audit.List(c.Request.Context(), limit)
	if listErr != nil {
		c.JSON(http.StatusInternalServerError, errors.ErrorResponse("не удалось прочитать журнал аудита"))
		return
	}

	c.JSON(http.StatusOK, records)
}
