package usecase

import (
	"context"
	"fmt"

	"github.com/director74/dz9_gateway/inventory-service/internal/entity"
	"github.com/director74/dz9_gateway/inventory-service/internal/repo"
	"github.com/director74/dz9_gateway/pkg/errors"
)

// InventoryUseCase реализует бизнес-логику работы со складом
type InventoryUseCase struct {
	productRepo repo.ProductRepository
}

// NewInventoryUseCase создает новый usecase склада
func NewInventoryUseCase(productRepo repo.ProductRepository) *InventoryUseCase {
	return &InventoryUseCase{productRepo: productRepo}
}

// CheckInventory проверяет наличие нужного количества товара без списания
func (uc *InventoryUseCase) CheckInventory(ctx context.Context, req entity.CheckInventoryRequest) (*entity.CheckInventoryResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, errors.AppendPrefix(err, "ошибка проверки наличия товара")
	}
	if product == nil {
		return nil, errors.NewNotFoundError("Product not found")
	}
	if product.Quantity < req.Quantity {
		return nil, errors.NewBadRequestError(fmt.Sprintf(
			"Insufficient inventory. Available: %d, Requested: %d", product.Quantity, req.Quantity))
	}

	return &entity.CheckInventoryResponse{
		Status:            "ok",
		Message:           "Inventory available",
		ProductName:       product.Name,
		AvailableQuantity: product.Quantity,
		Price:             product.Price,
	}, nil
}

// UpdateInventory списывает товар после успешной оплаты.
// Условное обновление в репозитории исключает уход остатка в минус при гонках.
func (uc *InventoryUseCase) UpdateInventory(ctx context.Context, req entity.UpdateInventoryRequest) error {
	updated, err := uc.productRepo.DecrementStock(ctx, req.ProductID, req.Quantity)
	if err != nil {
		return errors.AppendPrefix(err, "ошибка списания товара")
	}
	if !updated {
		return errors.NewBadRequestError("Failed to update inventory - insufficient quantity or product not found")
	}
	return nil
}

// GetProduct возвращает товар по идентификатору
func (uc *InventoryUseCase) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.AppendPrefix(err, "ошибка получения товара")
	}
	if product == nil {
		return nil, errors.NewNotFoundError("Product not found")
	}
	return product, nil
}

// ListProducts возвращает список товаров
func (uc *InventoryUseCase) ListProducts(ctx context.Context, limit, offset int) ([]entity.Product, error) {
	products, err := uc.productRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, errors.AppendPrefix(err, "ошибка получения списка товаров")
	}
	return products, nil
}

// CreateProduct добавляет товар в каталог
func (uc *InventoryUseCase) CreateProduct(ctx context.Context, req entity.CreateProductRequest) (*entity.Product, error) {
	if req.Price.IsNegative() {
		return nil, errors.NewBadRequestError("цена товара не может быть отрицательной")
	}
	product := &entity.Product{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, errors.AppendPrefix(err, "ошибка создания товара")
	}
	return product, nil
}

// UpdateProduct изменяет товар в каталоге
func (uc *InventoryUseCase) UpdateProduct(ctx context.Context, req entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, errors.AppendPrefix(err, "ошибка обновления товара")
	}
	if product == nil {
		return nil, errors.NewNotFoundError("Product not found")
	}
	if req.Price.IsNegative() {
		return nil, errors.NewBadRequestError("цена товара не может быть отрицательной")
	}

	product.Name = req.Name
	product.Quantity = req.Quantity
	product.Price = req.Price
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, errors.AppendPrefix(err, "ошибка обновления товара")
	}
	return product, nil
}

// DeleteProduct удаляет товар из каталога
func (uc *InventoryUseCase) DeleteProduct(ctx context.Context, id uint) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return errors.AppendPrefix(err, "ошибка удаления товара")
	}
	if product == nil {
		return errors.NewNotFoundError("Product not found")
	}
	return uc.productRepo.Delete(ctx, id)
}
