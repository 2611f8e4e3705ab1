package usecase

import (
	"context"

	"github.com/director74/dz9_gateway/gateway-service/internal/entity"
)

// BackendGateway выполняет исходящие вызовы к бэкендам через resilience-обёртку
// (circuit breaker, повторы с backoff, свежий сервисный токен на каждый вызов)
type BackendGateway interface {
	Call(ctx context.Context, backendName, path, method string, body interface{}) entity.BackendCallResult
}

// ReconciliationPublisher публикует события о повисших побочных эффектах саги
type ReconciliationPublisher interface {
	PublishMessage(exchange, routingKey string, message interface{}) error
}
