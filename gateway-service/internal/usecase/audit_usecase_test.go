package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/director74/dz9_gateway/gateway-service/internal/entity"
)

// Мок для AuditRepository
type MockAuditRepository struct {
	mock.Mock
	Records []entity.AuditLog
}

func (m *MockAuditRepository) Append(ctx context.Context, record *entity.AuditLog) error {
	args := m.Called(ctx, record)
	if args.Error(0) == nil {
		m.Records = append(m.Records, *record)
	}
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AuditLog), args.Error(1)
}

func TestAuditTwoRecordsPerCheckout(t *testing.T) {
	repo := new(MockAuditRepository)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)
	uc := NewAuditUseCase(repo)

	request := map[string]interface{}{"product_id": 1, "quantity": 2}
	response := map[string]interface{}{"status": "success"}

	uc.LogStarted(context.Background(), "req-1", "10.0.0.5", "/process_order", "POST", request)
	uc.LogCompleted(context.Background(), "req-1", "10.0.0.5", "/process_order", "POST", request, response)

	require.Len(t, repo.Records, 2)
	assert.Equal(t, entity.AuditStatusStarted, repo.Records[0].Status)
	assert.Equal(t, entity.AuditStatusCompleted, repo.Records[1].Status)

	// Обе записи связаны общим идентификатором запроса
	assert.Equal(t, "req-1", repo.Records[0].RequestID)
	assert.Equal(t, "req-1", repo.Records[1].RequestID)

	// Снимок запроса хранится как JSON, у стартовой записи нет снимка ответа
	assert.JSONEq(t, `{"product_id":1,"quantity":2}`, string(repo.Records[0].RequestData))
	assert.Empty(t, repo.Records[0].ResponseData)
	assert.JSONEq(t, `{"status":"success"}`, string(repo.Records[1].ResponseData))
}

// Отказ журнала не должен прерывать обработку checkout'а
func TestAuditAppendFailureSwallowed(t *testing.T) {
	repo := new(MockAuditRepository)
	repo.On("Append", mock.Anything, mock.Anything).Return(errors.New("база данных недоступна"))
	uc := NewAuditUseCase(repo)

	assert.NotPanics(t, func() {
		uc.LogStarted(context.Background(), "req-2", "10.0.0.5", "/process_order", "POST", nil)
		uc.LogFailed(context.Background(), "req-2", "10.0.0.5", "/process_order", "POST", nil, nil)
	})

	repo.AssertNumberOfCalls(t, "Append", 2)
}

func TestAuditListNewestFirst(t *testing.T) {
	now := time.Now()
	stored := []entity.AuditLog{
		{ID: 3, Timestamp: now, Status: entity.AuditStatusCompleted},
		{ID: 2, Timestamp: now.Add(-time.Minute), Status: entity.AuditStatusStarted},
		{ID: 1, Timestamp: now.Add(-2 * time.Minute), Status: entity.AuditStatusFailed},
	}

	repo := new(MockAuditRepository)
	repo.On("List", mock.Anything, 3).Return(stored, nil)
	uc := NewAuditUseCase(repo)

	records, err := uc.List(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i := 1; i < len(records); i++ {
		assert.True(t, records[i].Timestamp.Before(records[i-1].Timestamp),
			"записи должны идти по убыванию временной метки")
	}
}
