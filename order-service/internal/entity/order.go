package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы заказа
const (
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order заказ покупателя
type Order struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	ProductID     uint            `json:"product_id" gorm:"not null;index"`
	Quantity      int             `json:"quantity" gorm:"not null"`
	TotalPrice    decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2);not null"`
	CustomerEmail string          `json:"customer_email" gorm:"size:255;not null"`
	Status        string          `json:"status" gorm:"size:50;not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateOrderRequest запрос на создание заказа.
// Цена приходит от шлюза такой, какой её вернул склад, итог считается здесь.
type CreateOrderRequest struct {
	ProductID     uint            `json:"product_id" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,gt=0"`
	Price         decimal.Decimal `json:"price"`
	CustomerEmail string          `json:"customer_email" binding:"required,email"`
}

// CreateOrderResponse ответ на создание заказа
type CreateOrderResponse struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	OrderID    uint            `json:"order_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// StatusResponse универсальный ответ {status, message}
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
