package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/director74/dz9_gateway/gateway-service/internal/entity"
)

// OrderSagaOrchestrator последовательно проводит checkout через три бэкенда:
// проверка склада -> создание заказа -> оплата -> списание склада.
// Первый неудавшийся шаг прерывает сагу; уже выполненные побочные эффекты
// (созданный заказ, проведённый платёж) не компенсируются — вместо этого
// публикуется событие для ручной сверки.
type OrderSagaOrchestrator struct {
	gateway   BackendGateway
	publisher ReconciliationPublisher // nil, если брокер недоступен
	exchange  string
}

func NewOrderSagaOrchestrator(gateway BackendGateway, publisher ReconciliationPublisher, exchange string) *OrderSagaOrchestrator {
	return &OrderSagaOrchestrator{
		gateway:   gateway,
		publisher: publisher,
		exchange:  exchange,
	}
}

// ProcessOrder выполняет сагу оформления заказа. Сообщение каждого отказа
// включает дословный текст ошибки бэкенда (либо circuit breaker'а), чтобы
// вызывающая сторона могла отличить нехватку товара от отклонённого платежа
// и от недоступности сервиса.
func (o *OrderSagaOrchestrator) ProcessOrder(ctx context.Context, requestID string, req entity.CheckoutRequest) *entity.CheckoutResult {
	saga := entity.NewOrderSagaState(requestID)

	// Шаг 1: проверка наличия товара
	result := o.gateway.Call(ctx, entity.BackendInventory, "/check_inventory", "POST", req)
	if !result.OK() {
		return o.fail(saga, entity.StepCheckInventory, fmt.Sprintf("Inventory error: %s", result.Message))
	}
	saga.MarkSucceeded(entity.StepCheckInventory)

	// Шаг 2: создание заказа; бэкенд вычисляет итоговую сумму
	result = o.gateway.Call(ctx, entity.BackendOrder, "/create_order", "POST", req)
	if !result.OK() {
		// Резервирование склада не делалось, компенсировать нечего
		return o.fail(saga, entity.StepCreateOrder, fmt.Sprintf("Order error: %s", result.Message))
	}
	saga.OrderID = result.PayloadUint("order_id")
	saga.TotalPrice = result.PayloadDecimal("total_price")
	saga.MarkSucceeded(entity.StepCreateOrder)

	// Шаг 3: оплата по данным, которые вернул сервис заказов
	paymentBody := map[string]interface{}{
		"order_id":       saga.OrderID,
		"total_price":    saga.TotalPrice,
		"payment_method": req.PaymentMethod,
	}
	result = o.gateway.Call(ctx, entity.BackendPayment, "/process_payment", "POST", paymentBody)
	if !result.OK() {
		// Заказ уже создан и остаётся в системе без отката
		return o.fail(saga, entity.StepProcessPayment, fmt.Sprintf("Payment error: %s", result.Message))
	}
	saga.PaymentID = result.PayloadUint("payment_id")
	saga.MarkSucceeded(entity.StepProcessPayment)

	// Шаг 4: списание склада после успешной оплаты
	result = o.gateway.Call(ctx, entity.BackendInventory, "/update_inventory", "POST", req)
	if !result.OK() {
		// Заказ и платёж уже проведены; отказ списания лишь фиксируется
		return o.fail(saga, entity.StepCommitInventory, fmt.Sprintf("Inventory update error: %s", result.Message))
	}
	saga.MarkSucceeded(entity.StepCommitInventory)

	return &entity.CheckoutResult{
		Success:   true,
		Message:   "Order processed successfully",
		OrderID:   saga.OrderID,
		PaymentID: saga.PaymentID,
		Saga:      saga,
	}
}

// fail фиксирует отказ шага и формирует терминальный результат саги
func (o *OrderSagaOrchestrator) fail(saga *entity.OrderSagaState, step entity.SagaStep, message string) *entity.CheckoutResult {
	saga.MarkFailed(step, message)

	// После создания заказа любые дальнейшие отказы оставляют повисшие
	// побочные эффекты — сообщаем о них для ручной сверки
	if saga.OrderID != 0 {
		o.publishDangling(saga, step, message)
	}

	return &entity.CheckoutResult{
		Success: false,
		Message: message,
		Saga:    saga,
	}
}

// publishDangling отправляет событие ручной сверки; отказ публикации
// логируется и никогда не влияет на ответ пользователю
func (o *OrderSagaOrchestrator) publishDangling(saga *entity.OrderSagaState, step entity.SagaStep, message string) {
	event := entity.NewDanglingSagaEvent(saga, step, message)

	log.Printf("Повисшая сага %s: шаг %s, заказ %d, платёж %d: %s",
		saga.RequestID, step, event.OrderID, event.PaymentID, message)

	if o.publisher == nil {
		return
	}

	if err := o.publisher.PublishMessage(o.exchange, "saga.dangling", event); err != nil {
		log.Printf("Не удалось опубликовать событие сверки для саги %s: %v", saga.RequestID, err)
	}
}
