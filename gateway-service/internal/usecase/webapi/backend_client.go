package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/director74/dz9_gateway/gateway-service/internal/entity"
	"github.com/director74/dz9_gateway/pkg/resilience"
)

// TokenIssuer выписывает сервисный токен для бэкенда
type TokenIssuer interface {
	Issue(backendName string) (string, error)
}

// Config содержит настройки resilience-обёртки исходящих вызовов
type Config struct {
	// RetryAttempts — бюджет попыток на один вызов
	RetryAttempts int
	// BackoffBase — база линейного backoff: пауза = номер попытки × BackoffBase
	BackoffBase time.Duration
	// RequestTimeout — таймаут одного сетевого вызова
	RequestTimeout time.Duration
}

// NewConfig возвращает настройки по умолчанию: 3 попытки, backoff от 1 секунды, таймаут 15 секунд
func NewConfig() Config {
	return Config{
		RetryAttempts:  3,
		BackoffBase:    time.Second,
		RequestTimeout: 15 * time.Second,
	}
}

// BackendClient выполняет HTTP вызовы к бэкендам, оборачивая каждый в
// circuit breaker и повторы с линейным backoff. Сервисный токен выписывается
// заново на каждую попытку.
type BackendClient struct {
	backends   map[string]string // имя бэкенда -> базовый URL
	issuer     TokenIssuer
	breakers   *resilience.Registry
	httpClient *http.Client
	config     Config
}

func NewBackendClient(backends map[string]string, issuer TokenIssuer, breakers *resilience.Registry, config Config) *BackendClient {
	return &BackendClient{
		backends: backends,
		issuer:   issuer,
		breakers: breakers,
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config: config,
	}
}

// Call выполняет вызов бэкенда и классифицирует исход. Повторяются только
// временные отказы: таймауты, обрывы соединения и 5xx. Бизнес-отказы и
// ошибки аутентификации детерминированы и возвращаются с первой попытки.
// Отказы учитываются circuit breaker'ом бэкенда, разделяемым всеми
// конкурентными запросами; порог breaker'а накапливается поверх бюджета
// повторов отдельного вызова.
func (c *BackendClient) Call(ctx context.Context, backendName, path, method string, body interface{}) entity.BackendCallResult {
	baseURL, ok := c.backends[backendName]
	if !ok {
		return errorResult(entity.CallErrorConfig, 0,
			fmt.Sprintf("backend %s is not configured", backendName))
	}

	breaker := c.breakers.Get(backendName)
	var last entity.BackendCallResult

	for attempt := 1; attempt <= c.config.RetryAttempts; attempt++ {
		if err := breaker.Allow(); err != nil {
			// Breaker открыт: отказ без сетевого вызова
			return errorResult(entity.CallErrorCircuitOpen, 0, err.Error())
		}

		last = c.attempt(ctx, breaker, backendName, baseURL+path, method, body)
		if last.OK() || !last.Retryable() {
			return last
		}

		log.Printf("Попытка %d вызова %s%s не удалась: %s", attempt, backendName, path, last.Message)

		if attempt < c.config.RetryAttempts {
			backoff := time.Duration(attempt) * c.config.BackoffBase
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return errorResult(entity.CallErrorTransient, 0, ctx.Err().Error())
			}
		}
	}

	return last
}

// attempt выполняет одну попытку вызова и записывает её исход в breaker
func (c *BackendClient) attempt(ctx context.Context, breaker *resilience.CircuitBreaker, backendName, url, method string, body interface{}) entity.BackendCallResult {
	token, err := c.issuer.Issue(backendName)
	if err != nil {
		return errorResult(entity.CallErrorConfig, 0, err.Error())
	}

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return errorResult(entity.CallErrorConfig, 0, fmt.Sprintf("request marshaling failed: %v", err))
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, url, bytes.NewBuffer(bodyJSON))
	if err != nil {
		return errorResult(entity.CallErrorConfig, 0, fmt.Sprintf("request building failed: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Таймаут или обрыв соединения
		breaker.RecordFailure()
		return errorResult(entity.CallErrorTransient, 0, err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		breaker.RecordFailure()
		return errorResult(entity.CallErrorTransient, resp.StatusCode, err.Error())
	}

	var payload map[string]interface{}
	parseErr := json.Unmarshal(respBody, &payload)

	switch {
	case resp.StatusCode == http.StatusOK && parseErr == nil:
		breaker.RecordSuccess()
		return entity.BackendCallResult{
			Status:     "ok",
			HTTPStatus: resp.StatusCode,
			Payload:    payload,
		}

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// Бэкенд жив и ответил — для breaker'а это не отказ зависимости
		breaker.RecordSuccess()
		return errorResult(entity.CallErrorAuth, resp.StatusCode, payloadMessage(payload, "Unauthorized"))

	case (resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound) && parseErr == nil:
		// Явный бизнес-отказ: повторять детерминированное решение бессмысленно
		breaker.RecordSuccess()
		return errorResult(entity.CallErrorBusiness, resp.StatusCode, payloadMessage(payload, "request rejected"))

	default:
		// 5xx либо ответ, который не удалось разобрать
		breaker.RecordFailure()
		return errorResult(entity.CallErrorTransient, resp.StatusCode,
			fmt.Sprintf("service %s returned %d: %s", backendName, resp.StatusCode, string(respBody)))
	}
}

func errorResult(kind entity.CallErrorKind, httpStatus int, message string) entity.BackendCallResult {
	return entity.BackendCallResult{
		Status:     "error",
		HTTPStatus: httpStatus,
		ErrorKind:  kind,
		Message:    message,
	}
}

// payloadMessage извлекает текст ошибки из тела ответа бэкенда
func payloadMessage(payload map[string]interface{}, fallback string) string {
	if payload == nil {
		return fallback
	}
	if message, ok := payload["message"].(string); ok && message != "" {
		return message
	}
	return fallback
}
