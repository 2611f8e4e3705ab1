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

	"github.com/director74/dz9_gateway/gateway-service/config"
	httpController "github.com/director74/dz9_gateway/gateway-service/internal/controller/http"
	"github.com/director74/dz9_gateway/gateway-service/internal/entity"
	"github.com/director74/dz9_gateway/gateway-service/internal/repo"
	"github.com/director74/dz9_gateway/gateway-service/internal/usecase"
	"github.com/director74/dz9_gateway/gateway-service/internal/usecase/webapi"
	"github.com/director74/dz9_gateway/pkg/auth"
	"github.com/director74/dz9_gateway/pkg/database"
	"github.com/director74/dz9_gateway/pkg/errors"
	"github.com/director74/dz9_gateway/pkg/messaging"
	"github.com/director74/dz9_gateway/pkg/middleware"
	"github.com/director74/dz9_gateway/pkg/rabbitmq"
	"github.com/director74/dz9_gateway/pkg/resilience"
)

// App представляет приложение шлюза
type App struct {
	config     *config.Config
	httpServer *http.Server
	db         *gorm.DB
	rabbitMQ   *rabbitmq.RabbitMQ
}

func NewApp(cfg *config.Config) (*App, error) {
	// Денежные поля ходят по проводу как JSON числа
	decimal.MarshalJSONWithoutQuotes = true

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		return nil, errors.AppendPrefix(err, "не удалось подключиться к базе данных")
	}

	if err := database.AutoMigrateWithCleanup(db, &entity.AuditLog{}); err != nil {
		return nil, errors.AppendPrefix(err, "не удалось выполнить миграцию")
	}

	// Брокер нужен только для событий ручной сверки: его отсутствие не
	// мешает оркестрации, поэтому ошибка подключения не фатальна
	var rmq *rabbitmq.RabbitMQ
	var publisher usecase.ReconciliationPublisher
	rmq, err = messaging.InitRabbitMQ(cfg.RabbitMQ)
	if err != nil {
		log.Printf("ВНИМАНИЕ: RabbitMQ недоступен, события сверки публиковаться не будут: %v", err)
	} else {
		exchanges := map[string]string{
			cfg.ReconciliationExchange: "topic",
		}
		if err := messaging.SetupExchanges(rmq, exchanges); err != nil {
			log.Printf("ВНИМАНИЕ: не удалось объявить exchange сверки: %v", err)
		}
		publisher = rmq
	}

	// Эмитент сервисных токенов: принципал gateway, свой секрет на каждый бэкенд
	issuer := auth.NewServiceTokenIssuer(auth.NewIssuerConfig("gateway", cfg.BackendSecrets()))

	// Реестр circuit breaker'ов, по одному на бэкенд
	breakers := resilience.NewRegistry(resilience.Config{
		FailureThreshold: cfg.Resilience.FailureThreshold,
		Cooldown:         cfg.Resilience.Cooldown,
	})

	backendClient := webapi.NewBackendClient(cfg.BackendURLs(), issuer, breakers, webapi.Config{
		RetryAttempts:  cfg.Resilience.RetryAttempts,
		BackoffBase:    cfg.Resilience.BackoffBase,
		RequestTimeout: cfg.Resilience.RequestTimeout,
	})

	orchestrator := usecase.NewOrderSagaOrchestrator(backendClient, publisher, cfg.ReconciliationExchange)

	auditRepo := repo.NewAuditRepository(db)
	auditUseCase := usecase.NewAuditUseCase(auditRepo)

	internalAPI := middleware.NewInternalAuthMiddleware(nil)
	gatewayHandler := httpController.NewGatewayHandler(orchestrator, auditUseCase, internalAPI)

	// Инициализируем Gin роутер
	router := gin.Default()

	router.Use(errors.RecoveryMiddleware())
	router.NoRoute(errors.NotFoundHandler())
	router.NoMethod(errors.MethodNotAllowedHandler())

	gatewayHandler.RegisterRoutes(router)

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
		rabbitMQ:   rmq,
	}, nil
}

// Run запускает приложение
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		log.Printf("HTTP сервер шлюза запущен на порту %s", a.config.HTTP.Port)
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

	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(); err != nil {
			errGroup.AddPrefix(err, "ошибка при закрытии RabbitMQ")
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
