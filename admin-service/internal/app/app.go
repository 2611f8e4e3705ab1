package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/director74/dz9_gateway/admin-service/config"
	httpController "github.com/director74/dz9_gateway/admin-service/internal/controller/http"
	"github.com/director74/dz9_gateway/admin-service/internal/usecase"
	"github.com/director74/dz9_gateway/pkg/auth"
	"github.com/director74/dz9_gateway/pkg/errors"
)

// App представляет административное приложение
type App struct {
	config     *config.Config
	httpServer *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	authUseCase, err := usecase.NewAuthUseCase(cfg.AdminUsername, cfg.AdminPassword, cfg.SessionKey, cfg.SessionTTL)
	if err != nil {
		return nil, errors.AppendPrefix(err, "не удалось инициализировать аутентификацию")
	}

	proxyUseCase := usecase.NewProxyUseCase(cfg.BackendURLs(), cfg.BackendSecrets(), cfg.GatewayURL, cfg.InternalAPIKey, cfg.RequestTimeout)

	// Защищенные маршруты принимают только сессионные токены админки
	verifier := auth.NewServiceTokenVerifier(cfg.SessionKey, []string{"admin"})
	authMiddleware := auth.NewServiceAuthMiddleware(verifier)

	adminHandler := httpController.NewAdminHandler(authUseCase, proxyUseCase, authMiddleware)

	// Инициализируем Gin роутер
	router := gin.Default()

	router.Use(errors.RecoveryMiddleware())
	router.NoRoute(errors.NotFoundHandler())
	router.NoMethod(errors.MethodNotAllowedHandler())

	adminHandler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &App{
		config:     cfg,
		httpServer: httpServer,
	}, nil
}

// Run запускает приложение
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		log.Printf("HTTP сервер админки запущен на порту %s", a.config.HTTP.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Ошибка запуска HTTP сервера: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Println("Получен сигнал завершения, закрываем приложение...")
	case <-ctx.Done():
		log.Println("Контекст завершен, закрываем приложение...")
	}

	return a.Shutdown()
}

// Shutdown корректно завершает работу приложения
func (a *App) Shutdown() error {
	errGroup := errors.NewErrorGroup()

	if a.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.httpServer.Shutdown(ctx); err != nil {
			errGroup.AddPrefix(err, "ошибка при закрытии HTTP сервера")
		}
	}

	if errGroup.HasErrors() {
		errors.LogError(errGroup, "Shutdown")
		return errGroup
	}

	log.Println("Приложение успешно завершено")
	return nil
}
