package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы платежа
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
)

// Payment платеж по заказу
type Payment struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	OrderID       uint            `json:"order_id" gorm:"not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `json:"payment_method" gorm:"size:50;not null"`
	Status        string          `json:"status" gorm:"size:50;not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProcessPaymentRequest запрос на проведение платежа
type ProcessPaymentRequest struct {
	OrderID       uint            `json:"order_id" binding:"required"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaymentMethod string          `json:"payment_method"`
}

// ProcessPaymentResponse ответ на проведение платежа
type ProcessPaymentResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	PaymentID uint   `json:"payment_id"`
}

// StatusResponse универсальный ответ {status, message}
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
