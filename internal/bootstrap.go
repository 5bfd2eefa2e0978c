package internal

import (
	"brokerage-service/internal/adapters/filestore"
	logger_adapter "brokerage-service/internal/adapters/logger"
	"brokerage-service/internal/adapters/memstore"
	postgres_adapter "brokerage-service/internal/adapters/postgres"
	sqlite_adapter "brokerage-service/internal/adapters/sqlite"
	"brokerage-service/internal/adapters/storage"
	"brokerage-service/internal/configs"
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/port"
	fluentlogger "brokerage-service/pkg/fluent_logger"
	"brokerage-service/pkg/postgres"
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// NewLogger собирает stdout логгер и, если включен, Fluent Bit.
// Возвращенный клиент fluent (может быть nil) закрывает вызывающий.
func NewLogger(appConfig *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		if fluentClient != nil {
			fluentClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	baseLogger.Debug("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})
	return baseLogger, fluentClient, nil
}

// OpenDocumentBackend открывает хранилище документов по STORE_DRIVER
func OpenDocumentBackend(ctx context.Context, cfg configs.StoreConfig, logger port.LoggerPort) (port.DocumentBackendPort, error) {
	switch cfg.Driver {
	case configs.StoreDriverFile:
		backend, err := filestore.NewDocumentBackend(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open file store: %w", err)
		}
		logger.Info("File document backend opened", port.Fields{"data_dir": cfg.DataDir})
		return backend, nil
	case configs.StoreDriverSQLite:
		backend, err := sqlite_adapter.NewDocumentBackend(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Info("SQLite document backend opened", port.Fields{"path": cfg.SQLitePath})
		return backend, nil
	case configs.StoreDriverPostgres:
		dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.DatabaseURL})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		backend, err := postgres_adapter.NewDocumentBackend(ctx, dbPool)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create postgres document backend: %w", err)
		}
		logger.Info("Successfully connected to PostgreSQL pool!", nil)
		return backend, nil
	case configs.StoreDriverMemory:
		logger.Warn("Using in-memory document backend, data will not survive a restart", nil)
		return memstore.NewDocumentBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// OpenStore открывает бэкенд и оборачивает его в CollectionStore
func OpenStore(ctx context.Context, cfg configs.StoreConfig, observer port.PersistenceObserverPort, logger port.LoggerPort) (*storage.CollectionStore, error) {
	backend, err := OpenDocumentBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	ctx = contextkeys.ContextWithLogger(ctx, logger)
	store, err := storage.NewCollectionStore(ctx, backend, storage.Options{
		Policy:               storage.RecoveryPolicy(cfg.RecoveryPolicy),
		Observer:             observer,
		SeedSampleProperties: cfg.SeedSampleProperties,
	})
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to create collection store: %w", err)
	}
	return store, nil
}

func parseLogLevel(levelStr string) slog.Level {
	level, ok := logger_adapter.ParseLevel(levelStr)
	if !ok {
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
	}
	return level
}
