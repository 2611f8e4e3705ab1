package errors

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

// Общие ошибки сервисов
var (
	ErrNotFound       = errors.New("ресурс не найден")
	ErrUnauthorized   = errors.New("не авторизован")
	ErrInternalServer = errors.New("внутренняя ошибка сервера")
	ErrBadRequest     = errors.New("некорректный запрос")
)

// Классификация отказов исходящих вызовов к бэкендам.
// От неё зависит, будет ли вызов повторён и учтён circuit breaker'ом.
var (
	// ErrValidation — запрос отклонён до каких-либо обращений к бэкендам
	ErrValidation = errors.New("ошибка валидации запроса")
	// ErrCircuitOpen — circuit breaker открыт, сетевой вызов не выполнялся
	ErrCircuitOpen = errors.New("circuit breaker открыт")
	// ErrTransient — таймаут, отказ соединения или 5xx; повторяется в пределах бюджета
	ErrTransient = errors.New("временная ошибка бэкенда")
	// ErrBusinessRejected — бэкенд явно вернул status=error; повтор бессмыслен
	ErrBusinessRejected = errors.New("бизнес-отказ бэкенда")
)

// AppendPrefix добавляет префикс к сообщению об ошибке
func AppendPrefix(err error, prefix string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", prefix, err)
}

// LogError логирует ошибку с контекстом
func LogError(err error, context string) {
	if err == nil {
		return
	}
	log.Printf("ОШИБКА [%s]: %v", context, err)
}

// LogErrorWithDetails логирует ошибку с контекстом и дополнительными деталями
func LogErrorWithDetails(err error, context string, details map[string]interface{}) {
	if err == nil {
		return
	}

	var detailsString strings.Builder
	for k, v := range details {
		if detailsString.Len() > 0 {
			detailsString.WriteString(", ")
		}
		detailsString.WriteString(fmt.Sprintf("%s=%v", k, v))
	}

	log.Printf("ОШИБКА [%s]: %v | Детали: %s", context, err, detailsString.String())
}

// ErrorGroup представляет группу ошибок, собранных из разных операций
type ErrorGroup struct {
	errors []error
}

// NewErrorGroup создает новую группу ошибок
func NewErrorGroup() *ErrorGroup {
	return &ErrorGroup{
		errors: make([]error, 0),
	}
}

// Add добавляет ошибку в группу (игнорирует nil)
func (g *ErrorGroup) Add(err error) {
	if err != nil {
		g.errors = append(g.errors, err)
	}
}

// AddPrefix добавляет ошибку с префиксом в группу
func (g *ErrorGroup) AddPrefix(err error, prefix string) {
	if err != nil {
		g.errors = append(g.errors, AppendPrefix(err, prefix))
	}
}

// HasErrors проверяет, есть ли ошибки в группе
func (g *ErrorGroup) HasErrors() bool {
	return len(g.errors) > 0
}

// Error возвращает конкатенацию всех ошибок в группе
func (g *ErrorGroup) Error() string {
	var sb strings.Builder
	for i, err := range g.errors {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}
