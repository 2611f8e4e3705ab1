package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/director74/dz9_gateway/inventory-service/internal/entity"
	"github.com/director74/dz9_gateway/inventory-service/internal/usecase"
	"github.com/director74/dz9_gateway/pkg/auth"
	"github.com/director74/dz9_gateway/pkg/errors"
)

// InventoryHandler обработчик HTTP запросов склада
type InventoryHandler struct {
	inventoryUseCase *usecase.InventoryUseCase
	authMiddleware   *auth.ServiceAuthMiddleware
}

// NewInventoryHandler создает новый обработчик склада
func NewInventoryHandler(inventoryUseCase *usecase.InventoryUseCase, authMiddleware *auth.ServiceAuthMiddleware) *InventoryHandler {
	return &InventoryHandler{
		inventoryUseCase: inventoryUseCase,
		authMiddleware:   authMiddleware,
	}
}

// RegisterRoutes регистрирует маршруты склада
func (h *InventoryHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.HealthCheck)

	authorized := router.Group("/")
	authorized.Use(h.authMiddleware.Required())
	{
		authorized.POST("/check_inventory", h.CheckInventory)
		authorized.POST("/update_inventory", h.UpdateInventory)

		authorized.GET("/products", h.ListProducts)
		authorized.GET("/products/:id", h.GetProduct)
		authorized.POST("/products", h.CreateProduct)
		authorized.PUT("/products", h.UpdateProduct)
		authorized.DELETE("/products/:id", h.DeleteProduct)
	}
}

// CheckInventory проверяет наличие товара в нужном количестве
func (h *InventoryHandler) CheckInventory(c *gin.Context) {
	var req entity.CheckInventoryRequest
	if !errors.BindJSON(c, &req) {
		return
	}

	resp, err := h.inventoryUseCase.CheckInventory(c.Request.Context(), req)
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateInventory списывает товар со склада
func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	var req entity.UpdateInventoryRequest
	if !errors.BindJSON(c, &req) {
		return
	}

	if err := h.inventoryUseCase.UpdateInventory(c.Request.Context(), req); err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.StatusResponse{Status: "ok", Message: "Inventory updated successfully"})
}

// ListProducts возвращает список товаров
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, err := h.inventoryUseCase.ListProducts(c.Request.Context(), limit, offset)
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "products": products})
}

// GetProduct возвращает товар по идентификатору
func (h *InventoryHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse("некорректный идентификатор товара"))
		return
	}

	product, err := h.inventoryUseCase.GetProduct(c.Request.Context(), uint(id))
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "product": product})
}

// CreateProduct добавляет товар в каталог
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if !errors.BindJSON(c, &req) {
		return
	}

	product, err := h.inventoryUseCase.CreateProduct(c.Request.Context(), req)
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "product": product})
}

// UpdateProduct изменяет товар в каталоге
func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	var req entity.UpdateProductRequest
	if !errors.BindJSON(c, &req) {
		return
	}

	product, err := h.inventoryUseCase.UpdateProduct(c.Request.Context(), req)
	if err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "product": product})
}

// DeleteProduct удаляет товар из каталога
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse("некорректный идентификатор товара"))
		return
	}

	if err := h.inventoryUseCase.DeleteProduct(c.Request.Context(), uint(id)); err != nil {
		errors.HandleGinError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.StatusResponse{Status: "ok", Message: "Product deleted"})
}

// HealthCheck проверка работоспособности сервиса
func (h *InventoryHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, entity.StatusResponse{Status: "ok", Message: "Inventory service is running"})
}
