package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/director74/dz9_gateway/pkg/auth"
)

// Бэкенд должен принимать токены админки наравне с токенами шлюза
func TestForwardSendsVerifiableAdminToken(t *testing.T) {
	verifier := auth.NewServiceTokenVerifier("inventory-secret-key", []string{"gateway", "admin"})

	var gotPath, gotQuery string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Service)

		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","products":[]}`))
	}))
	defer backend.Close()

	uc := NewProxyUseCase(
		map[string]string{"inventory": backend.URL},
		map[string]string{"inventory": "inventory-secret-key"},
		"http://localhost:8080", "test-internal-key", 5*time.Second,
	)

	resp, err := uc.Forward(context.Background(), "inventory", http.MethodGet, "/products", "limit=10", nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","products":[]}`, string(resp.Body))
	assert.Equal(t, "/products", gotPath)
	assert.Equal(t, "limit=10", gotQuery)
}

// Статус ошибки бэкенда передается клиенту без изменений
func TestForwardPassesThroughBackendError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"error","message":"Product not found"}`))
	}))
	defer backend.Close()

	uc := NewProxyUseCase(
		map[string]string{"inventory": backend.URL},
		map[string]string{"inventory": "inventory-secret-key"},
		"http://localhost:8080", "test-internal-key", 5*time.Second,
	)

	resp, err := uc.Forward(context.Background(), "inventory", http.MethodGet, "/products/99", "", nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"status":"error","message":"Product not found"}`, string(resp.Body))
}

func TestForwardUnknownBackend(t *testing.T) {
	uc := NewProxyUseCase(
		map[string]string{},
		map[string]string{},
		"http://localhost:8080", "test-internal-key", 5*time.Second,
	)

	resp, err := uc.Forward(context.Background(), "billing", http.MethodGet, "/", "", nil)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, auth.ErrUnknownBackend)
}

// Журнал аудита шлюза закрыт внутренним API ключом
func TestGatewayLogsSendsInternalAPIKey(t *testing.T) {
	var gotKey string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Internal-API-Key")
		assert.Equal(t, "/admin/logs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","logs":[]}`))
	}))
	defer gateway.Close()

	uc := NewProxyUseCase(
		map[string]string{}, map[string]string{},
		gateway.URL, "test-internal-key", 5*time.Second,
	)

	resp, err := uc.GatewayLogs(context.Background(), "limit=50")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "test-internal-key", gotKey)
}
