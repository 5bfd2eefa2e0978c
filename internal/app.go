package internal

import (
	"brokerage-service/internal/adapters/aitext"
	token_adapter "brokerage-service/internal/adapters/jwt"
	"brokerage-service/internal/adapters/media"
	"brokerage-service/internal/adapters/metrics"
	rabbitmq_adapter "brokerage-service/internal/adapters/rabbitmq"
	"brokerage-service/internal/adapters/rest"
	"brokerage-service/internal/adapters/storage"
	"brokerage-service/internal/configs"
	"brokerage-service/internal/constants"
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/contracts"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/usecase"
	"brokerage-service/pkg/rabbitmq/rabbitmq_common"
	"brokerage-service/pkg/rabbitmq/rabbitmq_producer"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const shutdownTimeout = 15 * time.Second

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	store        *storage.CollectionStore
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	connManager   *rabbitmq_common.ConnectionManager
	leadsProducer *rabbitmq_producer.Publisher
}

// NewApp создает новый экземпляр приложения.
// Здесь все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := NewLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	app := &App{config: appConfig, fluentClient: fluentClient, logger: appLogger}
	if err := app.init(baseLogger); err != nil {
		app.release()
		return nil, err
	}
	return app, nil
}

func (a *App) init(baseLogger port.LoggerPort) error {
	appConfig := a.config
	appLogger := a.logger
	ctx := contextkeys.ContextWithLogger(context.Background(), baseLogger)

	if err := contracts.Load(); err != nil {
		appLogger.Error("Failed to compile request schemas", err, nil)
		return fmt.Errorf("failed to compile request schemas: %w", err)
	}

	// 1. Исходящие адаптеры
	promMetrics := metrics.NewPrometheusMetrics(strings.ReplaceAll(appConfig.AppName, "-", "_"))

	store, err := OpenStore(ctx, appConfig.Store, promMetrics, baseLogger.WithFields(port.Fields{"component": "store"}))
	if err != nil {
		appLogger.Error("Failed to open collection store", err, nil)
		return err
	}
	a.store = store
	appLogger.Info("Collection store initialized", port.Fields{
		"driver": appConfig.Store.Driver, "recovery_policy": store.Policy(),
	})

	tokenService, err := token_adapter.NewTokenService(appConfig.Auth.JWTSecret)
	if err != nil {
		appLogger.Error("Failed to create token service", err, nil)
		return err
	}

	var leadNotifier port.LeadNotifierPort
	if appConfig.RabbitMQ.URL != "" {
		notifier, err := a.initLeadEvents(baseLogger)
		if err != nil {
			return err
		}
		leadNotifier = notifier
	} else {
		appLogger.Info("RABBITMQ_URL is not set, lead events are disabled", nil)
	}

	var generator port.DescriptionGeneratorPort
	if appConfig.AI.APIKey != "" {
		gemini, err := aitext.NewGeminiGenerator(aitext.Config{
			APIKey:  appConfig.AI.APIKey,
			Model:   appConfig.AI.Model,
			BaseURL: appConfig.AI.BaseURL,
			Timeout: appConfig.AI.Timeout,
		})
		if err != nil {
			appLogger.Error("Failed to create description generator", err, nil)
			return err
		}
		generator = gemini
		appLogger.Info("Description generator initialized", port.Fields{"model": appConfig.AI.Model})
	} else {
		appLogger.Warn("AI_API_KEY is not set, description generation is disabled", nil)
	}

	mediaStorage, uploadsDir, err := a.initMedia(ctx)
	if err != nil {
		return err
	}
	appLogger.Info("All outgoing adapters initialized.", nil)

	// 2. Use cases
	listPropertiesUC := usecase.NewListPropertiesUseCase(store)
	getPropertyUC := usecase.NewGetPropertyUseCase(store)
	createPropertyUC := usecase.NewCreatePropertyUseCase(store)
	updatePropertyUC := usecase.NewUpdatePropertyUseCase(store)
	deletePropertyUC := usecase.NewDeletePropertyUseCase(store)

	createContactUC := usecase.NewCreateContactUseCase(store, leadNotifier)
	listContactsUC := usecase.NewListContactsUseCase(store)
	createInquiryUC := usecase.NewCreateInquiryUseCase(store, store, leadNotifier, appConfig.Store.InquiryRequireProperty)
	listInquiriesUC := usecase.NewListInquiriesUseCase(store)

	loginUC := usecase.NewLoginUserUseCase(store, tokenService, appConfig.Auth.TokenTTL)
	validateTokenUC := usecase.NewValidateTokenUseCase(tokenService)
	createUserUC := usecase.NewCreateUserUseCase(store)
	getUserUC := usecase.NewGetUserUseCase(store)

	generateDescriptionUC := usecase.NewGenerateDescriptionUseCase(generator)
	uploadMediaUC := usecase.NewUploadMediaUseCase(mediaStorage)
	appLogger.Info("All use cases initialized.", nil)

	created, err := usecase.NewEnsureAdminUseCase(store).Execute(ctx, appConfig.Auth.AdminUsername, appConfig.Auth.AdminPassword)
	if err != nil {
		appLogger.Error("Failed to ensure admin account", err, nil)
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}
	if created {
		appLogger.Info("Admin account created", port.Fields{"username": appConfig.Auth.AdminUsername})
	}

	// 3. REST API
	handlers := rest.Handlers{
		Properties: rest.NewPropertyHandlers(listPropertiesUC, getPropertyUC, createPropertyUC, updatePropertyUC, deletePropertyUC),
		Leads:      rest.NewLeadHandlers(createContactUC, listContactsUC, createInquiryUC, listInquiriesUC),
		Auth:       rest.NewAuthHandlers(loginUC, createUserUC, getUserUC),
		Content:    rest.NewContentHandlers(generateDescriptionUC, uploadMediaUC, appConfig.Media.MaxUploadBytes),
	}
	serverCfg := rest.ServerConfig{
		Port:               appConfig.Rest.PORT,
		CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
		UploadsDir:         uploadsDir,
		UploadsPrefix:      appConfig.Media.PublicBaseURL,
	}
	a.apiServer = rest.NewServer(serverCfg, handlers, rest.NewAuthMiddleware(validateTokenUC), promMetrics, baseLogger)
	appLogger.Info("REST API server configured.", nil)
	return nil
}

// initLeadEvents поднимает соединение с RabbitMQ и издателя событий о лидах
func (a *App) initLeadEvents(baseLogger port.LoggerPort) (port.LeadNotifierPort, error) {
	appLogger := a.logger

	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		rabbitmq_adapter.NewBrokerLogger(baseLogger, "rabbitmq_conn_manager"))
	if err != nil {
		appLogger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager
	appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		ExchangeName:             a.config.RabbitMQ.ExchangeName,
		ExchangeType:             constants.LeadsExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewBrokerLogger(baseLogger, "rabbitmq_producer"),
	}, connManager)
	if err != nil {
		appLogger.Error("Failed to create event producer", err, nil)
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.leadsProducer = producer

	notifier, err := rabbitmq_adapter.NewLeadNotifierAdapter(producer)
	if err != nil {
		return nil, err
	}
	appLogger.Info("RabbitMQ lead events producer initialized.", port.Fields{"exchange": a.config.RabbitMQ.ExchangeName})
	return notifier, nil
}

// initMedia выбирает хранилище медиа; для диска возвращает каталог для раздачи файлов
func (a *App) initMedia(ctx context.Context) (port.MediaStoragePort, string, error) {
	cfg := a.config.Media
	switch cfg.Driver {
	case "s3":
		s3Storage, err := media.NewS3Storage(ctx, media.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PathStyle:       cfg.S3PathStyle,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			a.logger.Error("Failed to create S3 media storage", err, nil)
			return nil, "", fmt.Errorf("failed to create S3 media storage: %w", err)
		}
		a.logger.Info("S3 media storage initialized", port.Fields{"bucket": cfg.S3Bucket})
		return s3Storage, "", nil
	default:
		fsStorage, err := media.NewFSStorage(cfg.FSRoot, cfg.PublicBaseURL)
		if err != nil {
			a.logger.Error("Failed to create filesystem media storage", err, nil)
			return nil, "", fmt.Errorf("failed to create filesystem media storage: %w", err)
		}
		a.logger.Info("Filesystem media storage initialized", port.Fields{"root": fsStorage.Root()})
		return fsStorage, fsStorage.Root(), nil
	}
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	defer a.release()

	errorsCh := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case runErr = <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", runErr, nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}
	return runErr
}

// release закрывает ресурсы в обратном порядке создания
func (a *App) release() {
	if a.leadsProducer != nil {
		if err := a.leadsProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("Error closing collection store", err, nil)
		}
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}
