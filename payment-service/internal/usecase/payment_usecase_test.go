package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/director74/dz9_gateway/payment-service/internal/entity"
	"github.com/director74/dz9_gateway/pkg/errors"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	args := m.Called(ctx, payment)
	if args.Error(0) == nil {
		payment.ID = 7
	}
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uint) (*entity.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context, limit, offset int) ([]entity.Payment, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProcessPaymentSuccess(t *testing.T) {
	mockRepo := new(MockPaymentRepository)
	uc := NewPaymentUseCase(mockRepo)

	var saved *entity.Payment
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Payment")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.Payment)
		}).
		Return(nil)

	resp, err := uc.ProcessPayment(context.Background(), entity.ProcessPaymentRequest{
		OrderID:       42,
		TotalPrice:    decimal.NewFromFloat(1999.98),
		PaymentMethod: "credit_card",
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Payment processed successfully", resp.Message)
	assert.Equal(t, uint(7), resp.PaymentID)

	require.NotNil(t, saved)
	assert.Equal(t, uint(42), saved.OrderID)
	assert.Equal(t, entity.PaymentStatusCompleted, saved.Status)
	mockRepo.AssertExpectations(t)
}

// Нулевая и отрицательная суммы — детерминированный отказ без записи в базу
func TestProcessPaymentRejectsNonPositiveAmount(t *testing.T) {
	amounts := map[string]decimal.Decimal{
		"zero":     decimal.Zero,
		"negative": decimal.NewFromFloat(-10.50),
	}

	for name, amount := range amounts {
		t.Run(name, func(t *testing.T) {
			mockRepo := new(MockPaymentRepository)
			uc := NewPaymentUseCase(mockRepo)

			resp, err := uc.ProcessPayment(context.Background(), entity.ProcessPaymentRequest{
				OrderID:    42,
				TotalPrice: amount,
			})

			require.Error(t, err)
			assert.Nil(t, resp)

			var serviceErr *errors.ServiceError
			require.ErrorAs(t, err, &serviceErr)
			assert.Equal(t, http.StatusBadRequest, serviceErr.Code)
			assert.Equal(t, "Invalid payment amount", serviceErr.Message)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

// Способ оплаты не указан — используется значение по умолчанию
func TestProcessPaymentDefaultMethod(t *testing.T) {
	mockRepo := new(MockPaymentRepository)
	uc := NewPaymentUseCase(mockRepo)

	var saved *entity.Payment
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Payment")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.Payment)
		}).
		Return(nil)

	_, err := uc.ProcessPayment(context.Background(), entity.ProcessPaymentRequest{
		OrderID:    42,
		TotalPrice: decimal.NewFromFloat(100),
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "credit_card", saved.PaymentMethod)
}

func TestGetPaymentNotFound(t *testing.T) {
	mockRepo := new(MockPaymentRepository)
	uc := NewPaymentUseCase(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, nil)

	payment, err := uc.GetPayment(context.Background(), 99)

	require.Error(t, err)
	assert.Nil(t, payment)

	var serviceErr *errors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, http.StatusNotFound, serviceErr.Code)
}
