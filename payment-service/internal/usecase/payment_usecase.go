package usecase

import (
	"context"

	"github.com/director74/dz9_gateway/payment-service/internal/entity"
	"github.com/director74/dz9_gateway/payment-service/internal/repo"
	"github.com/director74/dz9_gateway/pkg/errors"
)

const defaultPaymentMethod = "credit_card"

// PaymentUseCase реализует бизнес-логику проведения платежей
type PaymentUseCase struct {
	paymentRepo repo.PaymentRepository
}

// NewPaymentUseCase создает новый usecase платежей
func NewPaymentUseCase(paymentRepo repo.PaymentRepository) *PaymentUseCase {
	return &PaymentUseCase{paymentRepo: paymentRepo}
}

// ProcessPayment проводит платеж. Сумма меньше либо равная нулю —
// детерминированный отказ, а не временный сбой.
func (uc *PaymentUseCase) ProcessPayment(ctx context.Context, req entity.ProcessPaymentRequest) (*entity.ProcessPaymentResponse, error) {
	if !req.TotalPrice.IsPositive() {
		return nil, errors.NewBadRequestError("Invalid payment amount")
	}

	method := req.PaymentMethod
	if method == "" {
		method = defaultPaymentMethod
	}

	payment := &entity.Payment{
		OrderID:       req.OrderID,
		Amount:        req.TotalPrice,
		PaymentMethod: method,
		Status:        entity.PaymentStatusCompleted,
	}
	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, errors.AppendPrefix(err, "ошибка проведения платежа")
	}

	return &entity.ProcessPaymentResponse{
		Status:    "ok",
		Message:   "Payment processed successfully",
		PaymentID: payment.ID,
	}, nil
}

// GetPayment возвращает платеж по идентификатору
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id uint) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.AppendPrefix(err, "ошибка получения платежа")
	}
	if payment == nil {
		return nil, errors.NewNotFoundError("Payment not found")
	}
	return payment, nil
}

// ListPayments возвращает список платежей
func (uc *PaymentUseCase) ListPayments(ctx context.Context, limit, offset int) ([]entity.Payment, error) {
	payments, err := uc.paymentRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, errors.AppendPrefix(err, "ошибка получения списка платежей")
	}
	return payments, nil
}

// DeletePayment удаляет платеж
func (uc *PaymentUseCase) DeletePayment(ctx context.Context, id uint) error {
	payment, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return errors.AppendPrefix(err, "ошибка удаления платежа")
	}
	if payment == nil {
		return errors.NewNotFoundError("Payment not found")
	}
	return uc.paymentRepo.Delete(ctx, id)
}
