package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/director74/dz9_gateway/order-service/internal/entity"
)

// OrderRepository интерфейс для работы с заказами
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uint) (*entity.Order, error)
	List(ctx context.Context, limit, offset int) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type postgresOrderRepository struct {
	db *gorm.DB
}

// NewPostgresOrderRepository создает репозиторий заказов на PostgreSQL
func NewPostgresOrderRepository(db *gorm.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

func (r *postgresOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("ошибка создания заказа: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) GetByID(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения заказа: %w", err)
	}
	return &order, nil
}

func (r *postgresOrderRepository) List(ctx context.Context, limit, offset int) ([]entity.Order, error) {
	var orders []entity.Order
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("ошибка получения списка заказов: %w", err)
	}
	return orders, nil
}

func (r *postgresOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("ошибка обновления статуса заказа: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postgresOrderRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Order{}, id).Error; err != nil {
		return fmt.Errorf("ошибка удаления заказа: %w", err)
	}
	return nil
}
