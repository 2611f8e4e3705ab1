package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/director74/dz9_gateway/inventory-service/internal/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository интерфейс для работы с товарами
type ProductRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uint) error
	// DecrementStock атомарно списывает quantity единиц, не позволяя уйти в минус.
	// Возвращает false, если товара нет или остатка не хватает.
	DecrementStock(ctx context.Context, id uint, quantity int) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type postgresProductRepository struct {
	db *gorm.DB
}

// NewPostgresProductRepository создает репозиторий товаров на PostgreSQL
func NewPostgresProductRepository(db *gorm.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения товара: %w", err)
	}
	return &product, nil
}

func (r *postgresProductRepository) List(ctx context.Context, limit, offset int) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.db.WithContext(ctx).Order("id").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("ошибка получения списка товаров: %w", err)
	}
	return products, nil
}

func (r *postgresProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("ошибка создания товара: %w", err)
	}
	return nil
}

func (r *postgresProductRepository) Update(ctx context.Context, product *entity.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("ошибка обновления товара: %w", err)
	}
	return nil
}

func (r *postgresProductRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Product{}, id).Error; err != nil {
		return fmt.Errorf("ошибка удаления товара: %w", err)
	}
	return nil
}

func (r *postgresProductRepository) DecrementStock(ctx context.Context, id uint, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return false, fmt.Errorf("ошибка списания товара: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *postgresProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("ошибка подсчета товаров: %w", err)
	}
	return count, nil
}

// SeedDefaultProducts наполняет пустой каталог стартовым набором товаров
func SeedDefaultProducts(ctx context.Context, repository ProductRepository) error {
	count, err := repository.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []entity.Product{
		{Name: "Laptop", Quantity: 10, Price: decimal.NewFromFloat(999.99)},
		{Name: "Mouse", Quantity: 50, Price: decimal.NewFromFloat(29.99)},
		{Name: "Keyboard", Quantity: 30, Price: decimal.NewFromFloat(79.99)},
		{Name: "Monitor", Quantity: 15, Price: decimal.NewFromFloat(299.99)},
	}
	for i := range defaults {
		if err := repository.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	return nil
}
