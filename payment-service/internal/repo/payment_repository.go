package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/director74/dz9_gateway/payment-service/internal/entity"
)

// PaymentRepository интерфейс для работы с платежами
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uint) (*entity.Payment, error)
	List(ctx context.Context, limit, offset int) ([]entity.Payment, error)
	Delete(ctx context.Context, id uint) error
}

type postgresPaymentRepository struct {
	db *gorm.DB
}

// NewPostgresPaymentRepository создает репозиторий платежей на PostgreSQL
func NewPostgresPaymentRepository(db *gorm.DB) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

func (r *postgresPaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("ошибка создания платежа: %w", err)
	}
	return nil
}

func (r *postgresPaymentRepository) GetByID(ctx context.Context, id uint) (*entity.Payment, error) {
	var payment entity.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения платежа: %w", err)
	}
	return &payment, nil
}

func (r *postgresPaymentRepository) List(ctx context.Context, limit, offset int) ([]entity.Payment, error) {
	var payments []entity.Payment
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Offset(offset).Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("ошибка получения списка платежей: %w", err)
	}
	return payments, nil
}

func (r *postgresPaymentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Payment{}, id).Error; err != nil {
		return fmt.Errorf("ошибка удаления платежа: %w", err)
	}
	return nil
}
