package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/director74/dz9_gateway/gateway-service/internal/entity"
)

// AuditRepository интерфейс репозитория журнала аудита
type AuditRepository interface {
	Append(ctx context.Context, record *entity.AuditLog) error
	List(ctx context.Context, limit int) ([]entity.AuditLog, error)
}

// AuditRepositoryImpl реализация репозитория аудита на GORM
type AuditRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &AuditRepositoryImpl{
		db: db,
	}
}

// Append добавляет запись в журнал; записи никогда не изменяются и не удаляются
func (r *AuditRepositoryImpl) Append(ctx context.Context, record *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// List возвращает последние записи журнала, новые первыми
func (r *AuditRepositoryImpl) List(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	var records []entity.AuditLog
	result := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&records)

	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}
