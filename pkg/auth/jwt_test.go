package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer(principal string, ttl time.Duration) *ServiceTokenIssuer {
	cfg := NewIssuerConfig(principal, map[string]string{
		"inventory": "inventory-secret-key",
		"order":     "order-secret-key",
	})
	cfg.TokenTTL = ttl
	return NewServiceTokenIssuer(cfg)
}

func TestIssueAndVerify(t *testing.T) {
	issuer := testIssuer("gateway", time.Hour)

	token, err := issuer.Issue("inventory")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verifier := NewServiceTokenVerifier("inventory-secret-key", []string{"gateway", "admin"})
	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "gateway", claims.Service)
}

func TestIssueUnknownBackend(t *testing.T) {
	issuer := testIssuer("gateway", time.Hour)

	_, err := issuer.Issue("billing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}

// Токен, подписанный секретом одного бэкенда, не должен проходить
// проверку на другом бэкенде
func TestVerifyWrongSecret(t *testing.T) {
	issuer := testIssuer("gateway", time.Hour)

	token, err := issuer.Issue("inventory")
	require.NoError(t, err)

	verifier := NewServiceTokenVerifier("order-secret-key", []string{"gateway", "admin"})
	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := testIssuer("gateway", -time.Minute)

	token, err := issuer.Issue("inventory")
	require.NoError(t, err)

	verifier := NewServiceTokenVerifier("inventory-secret-key", []string{"gateway", "admin"})
	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerifyServiceNotAllowed(t *testing.T) {
	issuer := testIssuer("intruder", time.Hour)

	token, err := issuer.Issue("inventory")
	require.NoError(t, err)

	verifier := NewServiceTokenVerifier("inventory-secret-key", []string{"gateway", "admin"})
	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrServiceNotAllowed))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("operator-password")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("operator-password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}
