package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product товарная позиция склада
type Product struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Quantity  int             `json:"quantity" gorm:"not null;default:0"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CheckInventoryRequest запрос на проверку наличия товара
type CheckInventoryRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// CheckInventoryResponse ответ на проверку наличия товара
type CheckInventoryResponse struct {
	Status            string          `json:"status"`
	Message           string          `json:"message"`
	ProductName       string          `json:"product_name"`
	AvailableQuantity int             `json:"available_quantity"`
	Price             decimal.Decimal `json:"price"`
}

// UpdateInventoryRequest запрос на списание товара после оплаты
type UpdateInventoryRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// StatusResponse универсальный ответ {status, message}
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CreateProductRequest запрос на создание товара (административный API)
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Quantity int             `json:"quantity" binding:"required"`
	Price    decimal.Decimal `json:"price"`
}

// UpdateProductRequest запрос на изменение товара (административный API)
type UpdateProductRequest struct {
	ID       uint            `json:"id" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}
