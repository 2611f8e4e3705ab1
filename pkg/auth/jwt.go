package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnknownBackend возвращается при попытке выписать токен для бэкенда,
// отсутствующего в статической конфигурации
var ErrUnknownBackend = errors.New("неизвестный бэкенд в конфигурации")

// ErrServiceNotAllowed возвращается, когда принципал токена не входит в список разрешённых
var ErrServiceNotAllowed = errors.New("сервис не входит в список разрешённых")

// ServiceClaims содержит принципала межсервисного токена и стандартные JWT claims
type ServiceClaims struct {
	Service string `json:"service"`
	jwt.RegisteredClaims
}

// IssuerConfig содержит настройки выпуска сервисных токенов
type IssuerConfig struct {
	// Principal — имя, от которого выписываются токены ("gateway" или "admin")
	Principal string
	// Secrets — секрет подписи на каждый бэкенд, имя бэкенда -> ключ
	Secrets map[string]string
	// TokenTTL — срок жизни токена; токены не кэшируются, поэтому фактически одноразовые
	TokenTTL time.Duration
	// SigningMethod — метод подписи, HS256 для всех сервисов
	SigningMethod jwt.SigningMethod
}

func NewIssuerConfig(principal string, secrets map[string]string) *IssuerConfig {
	return &IssuerConfig{
		Principal:     principal,
		Secrets:       secrets,
		TokenTTL:      24 * time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}
}

// ServiceTokenIssuer выписывает межсервисные JWT токены, по одному секрету на бэкенд
type ServiceTokenIssuer struct {
	config *IssuerConfig
}

func NewServiceTokenIssuer(config *IssuerConfig) *ServiceTokenIssuer {
	return &ServiceTokenIssuer{
		config: config,
	}
}

// Issue создаёт свежеподписанный токен для указанного бэкенда.
// Токен выписывается заново на каждый вызов — кэширование изменило бы
// семантику при ротации секрета.
func (i *ServiceTokenIssuer) Issue(backendName string) (string, error) {
	secret, ok := i.config.Secrets[backendName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownBackend, backendName)
	}

	now := time.Now()
	claims := ServiceClaims{
		Service: i.config.Principal,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.config.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(i.config.SigningMethod, claims)
	return token.SignedString([]byte(secret))
}

// ServiceTokenVerifier проверяет входящие сервисные токены на стороне бэкенда
type ServiceTokenVerifier struct {
	signingKey      string
	allowedServices []string
}

func NewServiceTokenVerifier(signingKey string, allowedServices []string) *ServiceTokenVerifier {
	return &ServiceTokenVerifier{
		signingKey:      signingKey,
		allowedServices: allowedServices,
	}
}

// Verify проверяет подпись и срок действия токена и извлекает из него claims.
// Токены с принципалом вне списка разрешённых отклоняются, даже если подпись корректна.
func (v *ServiceTokenVerifier) Verify(tokenString string) (*ServiceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ServiceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(v.signingKey), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ServiceClaims)
	if !ok || !token.Valid {
		return nil, errors.New("недействительный токен")
	}

	for _, allowed := range v.allowedServices {
		if claims.Service == allowed {
			return claims, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrServiceNotAllowed, claims.Service)
}
