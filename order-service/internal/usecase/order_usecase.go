package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/director74/dz9_gateway/order-service/internal/entity"
	"github.com/director74/dz9_gateway/order-service/internal/repo"
	apperrors "github.com/director74/dz9_gateway/pkg/errors"
)

// OrderUseCase реализует бизнес-логику работы с заказами
type OrderUseCase struct {
	orderRepo repo.OrderRepository
}

// NewOrderUseCase создает новый usecase заказов
func NewOrderUseCase(orderRepo repo.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo}
}

// CreateOrder создает заказ и считает итоговую стоимость.
// Нулевая цена допустима: отказ по сумме — зона ответственности оплаты.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, req entity.CreateOrderRequest) (*entity.CreateOrderResponse, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.NewBadRequestError("цена товара не может быть отрицательной")
	}

	order := &entity.Order{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		TotalPrice:    req.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		CustomerEmail: req.CustomerEmail,
		Status:        entity.OrderStatusCompleted,
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, apperrors.AppendPrefix(err, "ошибка создания заказа")
	}

	return &entity.CreateOrderResponse{
		Status:     "ok",
		Message:    "Order created successfully",
		OrderID:    order.ID,
		TotalPrice: order.TotalPrice,
	}, nil
}

// GetOrder возвращает заказ по идентификатору
func (uc *OrderUseCase) GetOrder(ctx context.Context, id uint) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.AppendPrefix(err, "ошибка получения заказа")
	}
	if order == nil {
		return nil, apperrors.NewNotFoundError("Order not found")
	}
	return order, nil
}

// ListOrders возвращает список заказов
func (uc *OrderUseCase) ListOrders(ctx context.Context, limit, offset int) ([]entity.Order, error) {
	orders, err := uc.orderRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.AppendPrefix(err, "ошибка получения списка заказов")
	}
	return orders, nil
}

// CancelOrder помечает заказ отменённым (ручная сверка зависших саг)
func (uc *OrderUseCase) CancelOrder(ctx context.Context, id uint) error {
	err := uc.orderRepo.UpdateStatus(ctx, id, entity.OrderStatusCancelled)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError("Order not found")
	}
	if err != nil {
		return apperrors.AppendPrefix(err, "ошибка отмены заказа")
	}
	return nil
}

// DeleteOrder удаляет заказ
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, id uint) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return apperrors.AppendPrefix(err, "ошибка удаления заказа")
	}
	if order == nil {
		return apperrors.NewNotFoundError("Order not found")
	}
	return uc.orderRepo.Delete(ctx, id)
}
