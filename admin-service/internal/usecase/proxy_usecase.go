package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/director74/dz9_gateway/admin-service/internal/entity"
	"github.com/director74/dz9_gateway/pkg/auth"
	"github.com/director74/dz9_gateway/pkg/errors"
)

const internalAPIKeyHeader = "X-Internal-API-Key"

// ProxyUseCase пробрасывает административные запросы в бэкенды.
// Для каждого запроса выписывается свежий токен с принципалом admin,
// ответ бэкенда отдается клиенту без изменений.
type ProxyUseCase struct {
	httpClient     *http.Client
	issuer         *auth.ServiceTokenIssuer
	backendURLs    map[string]string
	gatewayURL     string
	internalAPIKey string
}

// NewProxyUseCase создает usecase проброса запросов в бэкенды
func NewProxyUseCase(backendURLs map[string]string, backendSecrets map[string]string, gatewayURL, internalAPIKey string, requestTimeout time.Duration) *ProxyUseCase {
	return &ProxyUseCase{
		httpClient:     &http.Client{Timeout: requestTimeout},
		issuer:         auth.NewServiceTokenIssuer(auth.NewIssuerConfig("admin", backendSecrets)),
		backendURLs:    backendURLs,
		gatewayURL:     gatewayURL,
		internalAPIKey: internalAPIKey,
	}
}

// Forward выполняет запрос к бэкенду от имени принципала admin
func (uc *ProxyUseCase) Forward(ctx context.Context, backendName, method, path, rawQuery string, body []byte) (*entity.ProxiedResponse, error) {
	baseURL, ok := uc.backendURLs[backendName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", auth.ErrUnknownBackend, backendName)
	}

	token, err := uc.issuer.Issue(backendName)
	if err != nil {
		return nil, errors.AppendPrefix(err, "ошибка выпуска сервисного токена")
	}

	url := baseURL + path
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.AppendPrefix(err, "ошибка формирования запроса к бэкенду")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	return uc.do(req, backendName)
}

// GatewayLogs запрашивает журнал аудита у шлюза. Endpoint журнала закрыт
// внутренним API ключом, а не сервисным токеном.
func (uc *ProxyUseCase) GatewayLogs(ctx context.Context, rawQuery string) (*entity.ProxiedResponse, error) {
	url := uc.gatewayURL + "/admin/logs"
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.AppendPrefix(err, "ошибка формирования запроса к шлюзу")
	}
	req.Header.Set(internalAPIKeyHeader, uc.internalAPIKey)

	return uc.do(req, "gateway")
}

func (uc *ProxyUseCase) do(req *http.Request, backendName string) (*entity.ProxiedResponse, error) {
	resp, err := uc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("сервис %s недоступен: %w", backendName, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа сервиса %s: %w", backendName, err)
	}

	return &entity.ProxiedResponse{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}
