package usecase

import (
	"time"

	"github.com/director74/dz9_gateway/admin-service/internal/entity"
	"github.com/director74/dz9_gateway/pkg/auth"
	"github.com/director74/dz9_gateway/pkg/errors"
)

const sessionBackend = "session"

// AuthUseCase реализует вход оператора и выпуск сессионных токенов.
// Сессионный токен — обычный сервисный JWT с принципалом admin,
// подписанный собственным ключом админки.
type AuthUseCase struct {
	username      string
	passwordHash  string
	sessionIssuer *auth.ServiceTokenIssuer
}

// NewAuthUseCase создает usecase аутентификации оператора.
// Пароль хранится в конфигурации открытым текстом и хэшируется при старте.
func NewAuthUseCase(username, password, sessionKey string, sessionTTL time.Duration) (*AuthUseCase, error) {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, errors.AppendPrefix(err, "ошибка хэширования пароля оператора")
	}

	issuerConfig := auth.NewIssuerConfig("admin", map[string]string{sessionBackend: sessionKey})
	issuerConfig.TokenTTL = sessionTTL

	return &AuthUseCase{
		username:      username,
		passwordHash:  passwordHash,
		sessionIssuer: auth.NewServiceTokenIssuer(issuerConfig),
	}, nil
}

// Login проверяет учетные данные и возвращает сессионный токен
func (uc *AuthUseCase) Login(req entity.LoginRequest) (*entity.LoginResponse, error) {
	if req.Username != uc.username || !auth.CheckPasswordHash(req.Password, uc.passwordHash) {
		return nil, errors.NewUnauthorizedError()
	}

	token, err := uc.sessionIssuer.Issue(sessionBackend)
	if err != nil {
		return nil, errors.AppendPrefix(err, "ошибка выпуска сессионного токена")
	}

	return &entity.LoginResponse{
		Status:  "ok",
		Message: "Login successful",
		Token:   token,
	}, nil
}
