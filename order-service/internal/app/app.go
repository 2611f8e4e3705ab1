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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/director74/dz9_gateway/order-service/config"
	httpController "github.com/director74/dz9_gateway/order-service/internal/controller/http"
	"github.com/director74/dz9_gateway/order-service/internal/entity"
	"github.com/director74/dz9_gateway/order-service/internal/repo"
	"github.com/director74/dz9_gateway/order-service/internal/usecase"
	"github.com/director74/dz9_gateway/pkg/auth"
	"github.com/director74/dz9_gateway/pkg/database"
	"github.com/director74/dz9_gateway/pkg/errors"
)

// App представляет приложение сервиса заказов
type App struct {
	config     *config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func NewApp(cfg *config.Config) (*App, error) {
	decimal.MarshalJSONWithoutQuotes = true

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		return nil, errors.AppendPrefix(err, "не удалось подключиться к базе данных")
	}

	if err := database.AutoMigrateWithCleanup(db, &entity.Order{}); err != nil {
		return nil, errors.AppendPrefix(err, "не удалось выполнить миграцию")
	}

	orderRepo := repo.NewPostgresOrderRepository(db)
	orderUseCase := usecase.NewOrderUseCase(orderRepo)

	verifier := auth.NewServiceTokenVerifier(cfg.Auth.SigningKey, cfg.Auth.AllowedServices)
	authMiddleware := auth.NewServiceAuthMiddleware(verifier)

	orderHandler := httpController.NewOrderHandler(orderUseCase, authMiddleware)

	// Инициализируем Gin роутер
	router := gin.Default()

	router.Use(errors.RecoveryMiddleware())
	router.NoRoute(errors.NotFoundHandler())
	router.NoMethod(errors.MethodNotAllowedHandler())

	orderHandler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &App{
		config:     cfg,
		httpServer: httpServer,
		db:         db,
	}, nil
}

// Run запускает приложение
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		log.Printf("HTTP сервер заказов запущен на порту %s", a.config.HTTP.Port)
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

	if a.db != nil {
		if err := database.CloseDB(a.db); err != nil {
			errGroup.AddPrefix(err, "ошибка при закрытии соединения с базой данных")
		}
	}

	if errGroup.HasErrors() {
		errors.LogError(errGroup, "Shutdown")
		return errGroup
	}

	log.Println("Приложение успешно завершено")
	return nil
}
