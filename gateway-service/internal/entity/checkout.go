package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/director74/dz9_gateway/pkg/errors"
)

// Имена бэкендов, известных шлюзу из статической конфигурации
const (
	BackendInventory = "inventory"
	BackendOrder     = "order"
	BackendPayment   = "payment"
)

// CheckoutRequest запрос на оформление заказа. После успешной валидации
// не изменяется до конца оркестрации.
type CheckoutRequest struct {
	ProductID     uint            `json:"product_id" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,gt=0"`
	Price         decimal.Decimal `json:"price"`
	CustomerEmail string          `json:"customer_email" binding:"required,email"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
}

// Validate проверяет ограничения, которые не выражаются binding-тегами.
// Нулевая цена допустима: заказ с нулевой суммой дойдёт до платёжного
// сервиса и будет отклонён там как бизнес-ошибка.
func (r CheckoutRequest) Validate() error {
	if r.Price.IsNegative() {
		return fmt.Errorf("%w: price не может быть отрицательной", pkgerrors.ErrValidation)
	}
	return nil
}

// CheckoutResponse ответ шлюза на запрос оформления заказа
type CheckoutResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	OrderID   uint   `json:"order_id,omitempty"`
	PaymentID uint   `json:"payment_id,omitempty"`
}

// CallErrorKind классифицирует отказ исходящего вызова к бэкенду
type CallErrorKind string

const (
	CallErrorNone        CallErrorKind = ""
	CallErrorConfig      CallErrorKind = "config"       // бэкенд отсутствует в конфигурации
	CallErrorCircuitOpen CallErrorKind = "circuit_open" // отказ без сетевого вызова
	CallErrorTransient   CallErrorKind = "transient"    // таймаут, обрыв соединения, 5xx
	CallErrorAuth        CallErrorKind = "auth"         // бэкенд отверг сервисный токен
	CallErrorBusiness    CallErrorKind = "business"     // бэкенд явно вернул status=error
)

// BackendCallResult результат одного обращения к бэкенду через resilience-обёртку.
// Явное значение вместо исключений: оркестратор разбирает исход по полям.
type BackendCallResult struct {
	Status     string                 `json:"status"` // "ok" либо "error"
	HTTPStatus int                    `json:"http_status"`
	Payload    map[string]interface{} `json:"payload"`
	ErrorKind  CallErrorKind          `json:"error_kind,omitempty"`
	Message    string                 `json:"message,omitempty"`
}

// OK сообщает, завершился ли вызов успешно
func (r BackendCallResult) OK() bool {
	return r.Status == "ok"
}

// Retryable сообщает, имеет ли смысл повторять вызов: повторяются только
// временные отказы, бизнес-отказы и ошибки аутентификации детерминированы
func (r BackendCallResult) Retryable() bool {
	return r.ErrorKind == CallErrorTransient
}

// PayloadUint извлекает числовое поле из ответа бэкенда
// (числа JSON десериализуются в float64)
func (r BackendCallResult) PayloadUint(key string) uint {
	value, ok := r.Payload[key].(float64)
	if !ok {
		return 0
	}
	return uint(value)
}

// PayloadString извлекает строковое поле из ответа бэкенда
func (r BackendCallResult) PayloadString(key string) string {
	value, _ := r.Payload[key].(string)
	return value
}

// PayloadDecimal извлекает денежное поле из ответа бэкенда
func (r BackendCallResult) PayloadDecimal(key string) decimal.Decimal {
	switch value := r.Payload[key].(type) {
	case float64:
		return decimal.NewFromFloat(value)
	case string:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
