package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/director74/dz9_gateway/gateway-service/internal/entity"
	"github.com/director74/dz9_gateway/gateway-service/internal/repo"
	"github.com/director74/dz9_gateway/pkg/errors"
)

// AuditUseCase ведёт журнал аудита оркестраций. Отказ записи в журнал
// логируется локально и никогда не прерывает обработку checkout'а.
type AuditUseCase struct {
	repo repo.AuditRepository
}

func NewAuditUseCase(repo repo.AuditRepository) *AuditUseCase {
	return &AuditUseCase{
		repo: repo,
	}
}

// LogStarted фиксирует приём запроса до начала оркестрации
func (uc *AuditUseCase) LogStarted(ctx context.Context, requestID, clientIP, endpoint, method string, request interface{}) {
	uc.append(ctx, requestID, clientIP, endpoint, method, request, nil, entity.AuditStatusStarted)
}

// LogCompleted фиксирует успешный терминальный исход со снимком ответа
func (uc *AuditUseCase) LogCompleted(ctx context.Context, requestID, clientIP, endpoint, method string, request, response interface{}) {
	uc.append(ctx, requestID, clientIP, endpoint, method, request, response, entity.AuditStatusCompleted)
}

// LogFailed фиксирует неуспешный терминальный исход со снимком ответа
func (uc *AuditUseCase) LogFailed(ctx context.Context, requestID, clientIP, endpoint, method string, request, response interface{}) {
	uc.append(ctx, requestID, clientIP, endpoint, method, request, response, entity.AuditStatusFailed)
}

// List возвращает последние записи журнала, новые первыми
func (uc *AuditUseCase) List(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	return uc.repo.List(ctx, limit)
}

func (uc *AuditUseCase) append(ctx context.Context, requestID, clientIP, endpoint, method string, request, response interface{}, status entity.AuditStatus) {
	record := &entity.AuditLog{
		RequestID:    requestID,
		Timestamp:    time.Now(),
		ClientIP:     clientIP,
		Endpoint:     endpoint,
		Method:       method,
		RequestData:  marshalSnapshot(request),
		ResponseData: marshalSnapshot(response),
		Status:       status,
	}

	if err := uc.repo.Append(ctx, record); err != nil {
		errors.LogErrorWithDetails(err, "AuditLog", map[string]interface{}{
			"request_id": requestID,
			"status":     status,
		})
	}
}

// marshalSnapshot сериализует снимок запроса/ответа; снимки непрозрачны,
// ошибки сериализации не должны ломать аудит
func marshalSnapshot(value interface{}) []byte {
	if value == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return []byte(`{"error":"unserializable"}`)
	}
	return data
}
