package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/director74/dz9_gateway/gateway-service/internal/entity"
)

// Мок для BackendGateway
type MockBackendGateway struct {
	mock.Mock
}

func (m *MockBackendGateway) Call(ctx context.Context, backendName, path, method string, body interface{}) entity.BackendCallResult {
	args := m.Called(ctx, backendName, path, method, body)
	return args.Get(0).(entity.BackendCallResult)
}

// Мок для ReconciliationPublisher
type MockPublisher struct {
	mock.Mock
	Events []entity.DanglingSagaEvent
}

func (m *MockPublisher) PublishMessage(exchange, routingKey string, message interface{}) error {
	args := m.Called(exchange, routingKey, message)
	if event, ok := message.(entity.DanglingSagaEvent); ok {
		m.Events = append(m.Events, event)
	}
	return args.Error(0)
}

func okResult(payload map[string]interface{}) entity.BackendCallResult {
	return entity.BackendCallResult{
		Status:     "ok",
		HTTPStatus: 200,
		Payload:    payload,
	}
}

func businessError(message string) entity.BackendCallResult {
	return entity.BackendCallResult{
		Status:     "error",
		HTTPStatus: 400,
		ErrorKind:  entity.CallErrorBusiness,
		Message:    message,
	}
}

func transientError(message string) entity.BackendCallResult {
	return entity.BackendCallResult{
		Status:     "error",
		HTTPStatus: 503,
		ErrorKind:  entity.CallErrorTransient,
		Message:    message,
	}
}

func testCheckoutRequest() entity.CheckoutRequest {
	return entity.CheckoutRequest{
		ProductID:     1,
		Quantity:      2,
		CustomerEmail: "customer@example.com",
		PaymentMethod: "credit_card",
	}
}

func TestProcessOrderSuccess(t *testing.T) {
	gateway := new(MockBackendGateway)
	publisher := new(MockPublisher)
	orchestrator := NewOrderSagaOrchestrator(gateway, publisher, "saga_reconciliation")

	gateway.On("Call", mock.Anything, "inventory", "/check_inventory", "POST", mock.Anything).
		Return(okResult(map[string]interface{}{"status": "ok", "message": "Inventory available"})).Once()
	gateway.On("Call", mock.Anything, "order", "/create_order", "POST", mock.Anything).
		Return(okResult(map[string]interface{}{"status": "ok", "order_id": float64(42), "total_price": float64(1999.98)})).Once()
	gateway.On("Call", mock.Anything, "payment", "/process_payment", "POST", mock.Anything).
		Return(okResult(map[string]interface{}{"status": "ok", "payment_id": float64(7)})).Once()
	gateway.On("Call", mock.Anything, "inventory", "/update_inventory", "POST", mock.Anything).
		Return(okResult(map[string]interface{}{"status": "ok", "message": "Inventory updated successfully"})).Once()

	result := orchestrator.ProcessOrder(context.Background(), "req-1", testCheckoutRequest())

	require.True(t, result.Success)
	assert.Equal(t, uint(42), result.OrderID)
	assert.Equal(t, uint(7), result.PaymentID)
	assert.Equal(t, "Order processed successfully", result.Message)

	for _, step := range result.Saga.Steps {
		assert.Equal(t, entity.StepStatusSucceeded, step.Status)
	}

	gateway.AssertExpectations(t)
	// Успешная сага не порождает событий сверки
	publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

// Отказ проверки склада прерывает сагу до создания заказа
func TestProcessOrderInsufficientInventory(t *testing.T) {
	gateway := new(MockBackendGateway)
	publisher := new(MockPublisher)
	orchestrator := NewOrderSagaOrchestrator(gateway, publisher, "saga_reconciliation")

	gateway.On("Call", mock.Anything, "inventory", "/check_inventory", "POST", mock.Anything).
		Return(businessError("Insufficient inventory. Available: 10, Requested: 20")).Once()

	result := orchestrator.ProcessOrder(context.Background(), "req-2", testCheckoutRequest())

	require.False(t, result.Success)
	assert.Equal(t, "Inventory error: Insufficient inventory. Available: 10, Requested: 20", result.Message)
	assert.Equal(t, entity.StepStatusFailed, result.Saga.Outcome(entity.StepCheckInventory).Status)
	assert.Equal(t, entity.StepStatusNotAttempted, result.Saga.Outcome(entity.StepCreateOrder).Status)

	// Никаких обращений к сервисам заказов и платежей
	gateway.AssertNumberOfCalls(t, "Call", 1)
	publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

// Отклонённый платёж оставляет созданный заказ без компенсации;
// повисшее состояние публикуется для ручной сверки
func TestProcessOrderPaymentDeclinedLeavesOrder(t *testing.T) {
	gateway := new(MockBackendGateway)
	publisher := new(MockPublisher)
	orchestrator := NewOrderSagaOrchestrator(gateway, publisher, "saga_reconciliation")

	gateway.On("Call", mock.Anything, "inventory", "/check_inventory", "POST", mock.Anything).
		Return(okResult(map[string]interface{}{"status": "ok"})).Once()
	gateway.On("Call", mock.Anything, "order", "/create_order", "POST", mock.Anything).
		Return(okResult(map[string]interface{}{"status": "ok", "order_id": float64(42), "total_price": float64(0)})).Once()
	gateway.On("Call", mock.Anything, "payment", "/process_payment", "POST", mock.Anything).
		Return(businessError("Invalid payment amount")).Once()
	publisher.On("PublishMessage", "saga_reconciliation", "saga.dangling", mock.Anything).Return(nil).Once()

	result := orchestrator.ProcessOrder(context.Background(), "req-3", testCheckoutRequest())

	require.False(t, result.Success)
	assert.Equal(t, "Payment error: Invalid payment amount", result.Message)

	// Заказ был создан и остался в системе: шаг create_order успешен,
	// компенсирующих вызовов не делалось, списание склада не выполнялось
	assert.Equal(t, entity.StepStatusSucceeded, result.Saga.Outcome(entity.StepCreateOrder).Status)
	assert.Equal(t, uint(42), result.Saga.OrderID)
	gateway.AssertNumberOfCalls(t, "Call", 3)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, uint(42), publisher.Events[0].OrderID)
	assert.Equal(t, entity.StepProcessPayment, publisher.Events[0].FailedStep)

	gateway.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

// Отказ финального списания фиксируется после уже проведённых заказа и платежа
func TestProcessOrderCommitFailureAfterPayment(t *testing.T) {
	gateway := new(MockBackendGateway)
	publisher := new(MockPublisher)
	orchestrator := NewOrderSagaOrchestrator(gateway, publisher, "saga_reconciliation")

	gateway.On("Call", mock.Anything, "inventory", "/check_inventory", "POST", mock.Anything).
		Return(okResult(map[string]interface{}{"status": "ok"})).Once()
	gateway.On("Call", mock.Anything, "order", "/create_order", "POST", mock.Anything).
		Return(okResult(map[string]interface{}{"status": "ok", "order_id": float64(42), "total_price": float64(59.98)})).Once()
	gateway.On("Call", mock.Anything, "payment", "/process_payment", "POST", mock.Anything).
		Return(okResult(map[string]interface{}{"status": "ok", "payment_id": float64(7)})).Once()
	gateway.On("Call", mock.Anything, "inventory", "/update_inventory", "POST", mock.Anything).
		Return(businessError("Failed to update inventory - insufficient quantity or product not found")).Once()
	publisher.On("PublishMessage", "saga_reconciliation", "saga.dangling", mock.Anything).Return(nil).Once()

	result := orchestrator.ProcessOrder(context.Background(), "req-4", testCheckoutRequest())

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "Inventory update error:")

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, uint(42), publisher.Events[0].OrderID)
	assert.Equal(t, uint(7), publisher.Events[0].PaymentID)
	assert.Equal(t, entity.StepCommitInventory, publisher.Events[0].FailedStep)
}

// Открытый circuit breaker отражается в сообщении шага без сетевого вызова
func TestProcessOrderCircuitOpen(t *testing.T) {
	gateway := new(MockBackendGateway)
	orchestrator := NewOrderSagaOrchestrator(gateway, nil, "saga_reconciliation")

	gateway.On("Call", mock.Anything, "inventory", "/check_inventory", "POST", mock.Anything).
		Return(entity.BackendCallResult{
			Status:    "error",
			ErrorKind: entity.CallErrorCircuitOpen,
			Message:   "circuit breaker открыт: бэкенд inventory недоступен, повтор после cool-down",
		}).Once()

	result := orchestrator.ProcessOrder(context.Background(), "req-5", testCheckoutRequest())

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "circuit breaker открыт")
	gateway.AssertNumberOfCalls(t, "Call", 1)
}

// Отсутствие брокера не должно ронять оркестрацию при публикации события сверки
func TestProcessOrderNilPublisher(t *testing.T) {
	gateway := new(MockBackendGateway)
	orchestrator := NewOrderSagaOrchestrator(gateway, nil, "saga_reconciliation")

	gateway.On("Call", mock.Anything, "inventory", "/check_inventory", "POST", mock.Anything).
		Return(okResult(map[string]interface{}{"status": "ok"})).Once()
	gateway.On("Call", mock.Anything, "order", "/create_order", "POST", mock.Anything).
		Return(okResult(map[string]interface{}{"status": "ok", "order_id": float64(1), "total_price": float64(10)})).Once()
	gateway.On("Call", mock.Anything, "payment", "/process_payment", "POST", mock.Anything).
		Return(transientError("service payment returned 503: unavailable")).Once()

	result := orchestrator.ProcessOrder(context.Background(), "req-6", testCheckoutRequest())

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "Payment error:")
}
