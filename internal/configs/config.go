package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Драйверы хранилища коллекций
const (
	StoreDriverFile     = "file"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Политики восстановления после сбоев чтения/записи
const (
	RecoveryFailOpen   = "fail_open"
	RecoveryFailClosed = "fail_closed"
)

type RESTconfig struct {
	PORT               string
	CORSAllowedOrigins []string
}

type StoreConfig struct {
	Driver                 string
	DataDir                string
	SQLitePath             string
	DatabaseURL            string
	RecoveryPolicy         string
	SeedSampleProperties   bool
	InquiryRequireProperty bool
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
}

type RabbitMQConfig struct {
	URL          string
	ExchangeName string
}

type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type MediaConfig struct {
	Driver          string
	FSRoot          string
	PublicBaseURL   string
	MaxUploadBytes  int64
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PathStyle     bool
	S3PublicBaseURL string
	// пустые ключи - стандартная цепочка учетных данных AWS
	S3AccessKeyID     string
	S3SecretAccessKey string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTconfig
	Store        StoreConfig
	Auth         AuthConfig
	RabbitMQ     RabbitMQConfig
	AI           AIConfig
	Media        MediaConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из .env (если он есть) и переменных окружения
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		if len(envPath) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Printf("Info: .env file not found, using process environment only")
	}

	cfg := &AppConfig{}
	cfg.AppName = getEnvAsString("APP_NAME", "brokerage-service")

	cfg.Rest.PORT = getEnvAsString("PORT", "5000")
	cfg.Rest.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	cfg.Store.Driver = strings.ToLower(getEnvAsString("STORE_DRIVER", StoreDriverFile))
	cfg.Store.DataDir = getEnvAsString("DATA_DIR", "data")
	cfg.Store.SQLitePath = getEnvAsString("SQLITE_PATH", "data/brokerage.db")
	cfg.Store.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.Store.RecoveryPolicy = strings.ToLower(getEnvAsString("STORE_RECOVERY_POLICY", RecoveryFailOpen))
	cfg.Store.SeedSampleProperties = getEnvAsBool("SEED_SAMPLE_PROPERTIES", true)
	cfg.Store.InquiryRequireProperty = getEnvAsBool("INQUIRY_REQUIRE_PROPERTY", false)

	switch cfg.Store.Driver {
	case StoreDriverFile, StoreDriverSQLite, StoreDriverMemory:
	case StoreDriverPostgres:
		if cfg.Store.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	switch cfg.Store.RecoveryPolicy {
	case RecoveryFailOpen, RecoveryFailClosed:
	default:
		return nil, fmt.Errorf("unknown STORE_RECOVERY_POLICY %q", cfg.Store.RecoveryPolicy)
	}

	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	cfg.Auth.TokenTTL = getEnvAsDuration("JWT_TTL", 24*time.Hour)
	cfg.Auth.AdminUsername = os.Getenv("ADMIN_USERNAME")
	cfg.Auth.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	cfg.RabbitMQ.ExchangeName = getEnvAsString("RABBITMQ_LEADS_EXCHANGE", "leads_exchange")

	cfg.AI.APIKey = os.Getenv("AI_API_KEY")
	cfg.AI.Model = getEnvAsString("AI_MODEL", "gemini-1.5-flash")
	cfg.AI.BaseURL = getEnvAsString("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	cfg.AI.Timeout = getEnvAsDuration("AI_TIMEOUT", 30*time.Second)

	cfg.Media.Driver = strings.ToLower(getEnvAsString("MEDIA_DRIVER", "fs"))
	cfg.Media.FSRoot = getEnvAsString("MEDIA_FS_ROOT", "uploads")
	cfg.Media.PublicBaseURL = getEnvAsString("MEDIA_PUBLIC_BASE_URL", "/uploads")
	cfg.Media.MaxUploadBytes = int64(getEnvAsInt("MEDIA_MAX_UPLOAD_MB", 50)) << 20
	switch cfg.Media.Driver {
	case "fs":
	case "s3":
		cfg.Media.S3Bucket = os.Getenv("MEDIA_S3_BUCKET")
		if cfg.Media.S3Bucket == "" {
			return nil, fmt.Errorf("MEDIA_S3_BUCKET environment variable is required for MEDIA_DRIVER=s3")
		}
		cfg.Media.S3Region = getEnvAsString("MEDIA_S3_REGION", "us-east-1")
		cfg.Media.S3Endpoint = os.Getenv("MEDIA_S3_ENDPOINT")
		cfg.Media.S3PathStyle = getEnvAsBool("MEDIA_S3_PATH_STYLE", false)
		cfg.Media.S3PublicBaseURL = os.Getenv("MEDIA_S3_PUBLIC_BASE_URL")
		cfg.Media.S3AccessKeyID = os.Getenv("MEDIA_S3_ACCESS_KEY_ID")
		cfg.Media.S3SecretAccessKey = os.Getenv("MEDIA_S3_SECRET_ACCESS_KEY")
	default:
		return nil, fmt.Errorf("unknown MEDIA_DRIVER %q", cfg.Media.Driver)
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную как int; при ошибке разбора пишет предупреждение и берет значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsList читает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valueStr) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
