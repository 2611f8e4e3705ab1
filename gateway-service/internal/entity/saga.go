package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SagaStep имя шага оркестрации
type SagaStep string

// Шаги саги в порядке выполнения. Шаг N выполняется только после успеха
// шага N-1; финальное списание склада — только после успешной оплаты.
const (
	StepCheckInventory  SagaStep = "check_inventory"
	StepCreateOrder     SagaStep = "create_order"
	StepProcessPayment  SagaStep = "process_payment"
	StepCommitInventory SagaStep = "commit_inventory"
)

// StepStatus статус отдельного шага саги
type StepStatus string

const (
	StepStatusNotAttempted StepStatus = "not_attempted"
	StepStatusSucceeded    StepStatus = "succeeded"
	StepStatusFailed       StepStatus = "failed"
)

// StepOutcome исход одного шага саги
type StepOutcome struct {
	Step    SagaStep   `json:"step"`
	Status  StepStatus `json:"status"`
	Message string     `json:"message,omitempty"`
}

// OrderSagaState эфемерное состояние одной оркестрации. Живёт только на
// время обработки запроса; долговременный след остаётся лишь в журнале
// аудита и в событиях для ручной сверки.
type OrderSagaState struct {
	RequestID  string
	Steps      []StepOutcome
	OrderID    uint
	TotalPrice decimal.Decimal
	PaymentID  uint
}

// NewOrderSagaState создаёт состояние саги со всеми шагами в статусе not_attempted
func NewOrderSagaState(requestID string) *OrderSagaState {
	steps := []SagaStep{StepCheckInventory, StepCreateOrder, StepProcessPayment, StepCommitInventory}
	outcomes := make([]StepOutcome, 0, len(steps))
	for _, step := range steps {
		outcomes = append(outcomes, StepOutcome{Step: step, Status: StepStatusNotAttempted})
	}

	return &OrderSagaState{
		RequestID: requestID,
		Steps:     outcomes,
	}
}

// MarkSucceeded отмечает шаг успешным
func (s *OrderSagaState) MarkSucceeded(step SagaStep) {
	s.setStatus(step, StepStatusSucceeded, "")
}

// MarkFailed отмечает шаг неудавшимся с сообщением об ошибке
func (s *OrderSagaState) MarkFailed(step SagaStep, message string) {
	s.setStatus(step, StepStatusFailed, message)
}

// Outcome возвращает исход шага
func (s *OrderSagaState) Outcome(step SagaStep) StepOutcome {
	for _, outcome := range s.Steps {
		if outcome.Step == step {
			return outcome
		}
	}
	return StepOutcome{Step: step, Status: StepStatusNotAttempted}
}

func (s *OrderSagaState) setStatus(step SagaStep, status StepStatus, message string) {
	for i := range s.Steps {
		if s.Steps[i].Step == step {
			s.Steps[i].Status = status
			s.Steps[i].Message = message
			return
		}
	}
}

// CheckoutResult терминальный исход саги
type CheckoutResult struct {
	Success   bool
	Message   string
	OrderID   uint
	PaymentID uint
	Saga      *OrderSagaState
}

// DanglingSagaEvent событие о сохранившихся побочных эффектах провалившейся
// саги (созданный заказ, проведённый платёж). Компенсация не выполняется,
// событие публикуется для ручной сверки.
type DanglingSagaEvent struct {
	RequestID  string   `json:"request_id"`
	OrderID    uint     `json:"order_id"`
	PaymentID  uint     `json:"payment_id,omitempty"`
	FailedStep SagaStep `json:"failed_step"`
	Message    string   `json:"message"`
	Timestamp  int64    `json:"timestamp"`
}

// NewDanglingSagaEvent создаёт событие ручной сверки по текущему состоянию саги
func NewDanglingSagaEvent(saga *OrderSagaState, failedStep SagaStep, message string) DanglingSagaEvent {
	return DanglingSagaEvent{
		RequestID:  saga.RequestID,
		OrderID:    saga.OrderID,
		PaymentID:  saga.PaymentID,
		FailedStep: failedStep,
		Message:    message,
		Timestamp:  time.Now().Unix(),
	}
}
