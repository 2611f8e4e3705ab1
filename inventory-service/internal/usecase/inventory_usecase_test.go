package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/director74/dz9_gateway/inventory-service/internal/entity"
	"github.com/director74/dz9_gateway/pkg/errors"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]entity.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uint, quantity int) (bool, error) {
	args := m.Called(ctx, id, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func laptop() *entity.Product {
	return &entity.Product{
		ID:       1,
		Name:     "Laptop",
		Quantity: 10,
		Price:    decimal.NewFromFloat(999.99),
	}
}

func TestCheckInventorySuccess(t *testing.T) {
	mockRepo := new(MockProductRepository)
	uc := NewInventoryUseCase(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(laptop(), nil)

	resp, err := uc.CheckInventory(context.Background(), entity.CheckInventoryRequest{ProductID: 1, Quantity: 2})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Laptop", resp.ProductName)
	assert.Equal(t, 10, resp.AvailableQuantity)
	assert.True(t, resp.Price.Equal(decimal.NewFromFloat(999.99)))
	mockRepo.AssertExpectations(t)
}

func TestCheckInventoryNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	uc := NewInventoryUseCase(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, nil)

	resp, err := uc.CheckInventory(context.Background(), entity.CheckInventoryRequest{ProductID: 99, Quantity: 1})

	require.Error(t, err)
	assert.Nil(t, resp)

	var serviceErr *errors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, http.StatusNotFound, serviceErr.Code)
	assert.Equal(t, "Product not found", serviceErr.Message)
}

func TestCheckInventoryInsufficient(t *testing.T) {
	mockRepo := new(MockProductRepository)
	uc := NewInventoryUseCase(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(laptop(), nil)

	resp, err := uc.CheckInventory(context.Background(), entity.CheckInventoryRequest{ProductID: 1, Quantity: 11})

	require.Error(t, err)
	assert.Nil(t, resp)

	var serviceErr *errors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, http.StatusBadRequest, serviceErr.Code)
	assert.Equal(t, "Insufficient inventory. Available: 10, Requested: 11", serviceErr.Message)
}

// Запрос ровно на весь остаток должен проходить
func TestCheckInventoryExactQuantity(t *testing.T) {
	mockRepo := new(MockProductRepository)
	uc := NewInventoryUseCase(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(laptop(), nil)

	resp, err := uc.CheckInventory(context.Background(), entity.CheckInventoryRequest{ProductID: 1, Quantity: 10})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestUpdateInventorySuccess(t *testing.T) {
	mockRepo := new(MockProductRepository)
	uc := NewInventoryUseCase(mockRepo)

	mockRepo.On("DecrementStock", mock.Anything, uint(1), 2).Return(true, nil)

	err := uc.UpdateInventory(context.Background(), entity.UpdateInventoryRequest{ProductID: 1, Quantity: 2})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// Условное списание вернуло false: остатка не хватило или товара нет
func TestUpdateInventoryGuarded(t *testing.T) {
	mockRepo := new(MockProductRepository)
	uc := NewInventoryUseCase(mockRepo)

	mockRepo.On("DecrementStock", mock.Anything, uint(1), 100).Return(false, nil)

	err := uc.UpdateInventory(context.Background(), entity.UpdateInventoryRequest{ProductID: 1, Quantity: 100})

	require.Error(t, err)

	var serviceErr *errors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, http.StatusBadRequest, serviceErr.Code)
	assert.Equal(t, "Failed to update inventory - insufficient quantity or product not found", serviceErr.Message)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	uc := NewInventoryUseCase(mockRepo)

	product, err := uc.CreateProduct(context.Background(), entity.CreateProductRequest{
		Name:     "Webcam",
		Quantity: 5,
		Price:    decimal.NewFromFloat(-10),
	})

	require.Error(t, err)
	assert.Nil(t, product)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
