package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceError представляет ошибку бэкенда с HTTP-статусом
type ServiceError struct {
	Code    int    // HTTP-статус
	Message string // Сообщение об ошибке
	Err     error  // Исходная ошибка
}

// NewServiceError создает новую ошибку сервиса
func NewServiceError(code int, message string, err error) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error реализует интерфейс error
func (e *ServiceError) Error() string {
	return e.Message
}

// Unwrap возвращает оригинальную ошибку
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(message string) *ServiceError {
	return NewServiceError(http.StatusNotFound, message, ErrNotFound)
}

func NewBadRequestError(message string) *ServiceError {
	return NewServiceError(http.StatusBadRequest, message, ErrBadRequest)
}

func NewUnauthorizedError() *ServiceError {
	return NewServiceError(http.StatusUnauthorized, "Unauthorized", ErrUnauthorized)
}

// ToHTTPResponse преобразует ошибку в пару (код, тело ответа).
// Неопознанные ошибки считаются внутренними и не раскрывают деталей.
func ToHTTPResponse(err error) (int, HTTPErrorResponse) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code, ErrorResponse(se.Message)
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, ErrorResponse(err.Error())
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse(err.Error())
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrValidation):
		return http.StatusBadRequest, ErrorResponse(err.Error())
	default:
		return http.StatusInternalServerError, ErrorResponse("Внутренняя ошибка сервера")
	}
}

// HandleGinError отдаёт ошибку клиенту, если она не nil; возвращает true, когда ответ отправлен
func HandleGinError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	code, response := ToHTTPResponse(err)
	c.JSON(code, response)
	c.Abort()
	return true
}
