package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	// ApplicationName shows up in pg_stat_activity.
	ApplicationName   string
	ConnectTimeoutSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RedisConfig holds the connection settings of the cleanup job queue.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// UploadConfig controls how uploaded batches are validated and named in storage.
type UploadConfig struct {
	// PathPrefix is prepended to every uploaded file name ("path/to/files/" by default).
	PathPrefix string
	// SuffixAlphabet and SuffixLength shape the random suffix appended on name collisions.
	SuffixAlphabet string
	SuffixLength   int
	// MaxNameLength of zero disables the file name length check.
	MaxNameLength  int
	AllowEmptyFile bool
	UseURL         bool
	Required       bool
	// MaxImagePixels caps width*height declared by an image header. Zero disables it.
	MaxImagePixels  int64
	FetchTimeoutSec int
	// MaxFetchMB caps the body of one URL-sourced file. It defaults to APP_BODY_LIMIT_MB.
	MaxFetchMB int
}

// CleanupConfig holds settings for the deferred deletion queue and its worker.
type CleanupConfig struct {
	QueueKey         string
	PollTimeoutSec   int
	DeletesPerSecond float64
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// TracingConfig mirrors the standard OTEL_* variables the tracer provider honours.
type TracingConfig struct {
	Disabled    bool
	ServiceName string
	// Protocol is "grpc" or "http/protobuf".
	Protocol   string
	Endpoint   string
	Sampler    string
	SamplerArg string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Timezone string
	// BodyLimitMB caps the size of one admin form submission.
	BodyLimitMB int
	Database    DatabaseConfig
	MinIO       MinIOConfig
	Redis       RedisConfig
	Upload      UploadConfig
	Cleanup     CleanupConfig
	Log         LogConfig
	Tracing     TracingConfig
}

// DefaultSuffixAlphabet is used when UPLOAD_SUFFIX_ALPHABET is not set.
const DefaultSuffixAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultMaxImagePixels rejects images larger than about 179 megapixels.
const DefaultMaxImagePixels = 178956970

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	bodyLimitMB := getEnvInt("APP_BODY_LIMIT_MB", 32)
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		BodyLimitMB: bodyLimitMB,
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ApplicationName:    getEnv("DB_APPLICATION_NAME", "filearray"),
			ConnectTimeoutSec:  getEnvInt("DB_CONNECT_TIMEOUT_SEC", 5),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Upload: UploadConfig{
			PathPrefix:      getEnv("UPLOAD_PATH_PREFIX", "path/to/files/"),
			SuffixAlphabet:  getEnv("UPLOAD_SUFFIX_ALPHABET", DefaultSuffixAlphabet),
			SuffixLength:    getEnvInt("UPLOAD_SUFFIX_LENGTH", 5),
			MaxNameLength:   getEnvInt("UPLOAD_MAX_NAME_LENGTH", 0),
			AllowEmptyFile:  getEnvBool("UPLOAD_ALLOW_EMPTY_FILE", false),
			UseURL:          getEnvBool("UPLOAD_USE_URL", false),
			Required:        getEnvBool("UPLOAD_REQUIRED", false),
			MaxImagePixels:  int64(getEnvInt("UPLOAD_MAX_IMAGE_PIXELS", DefaultMaxImagePixels)),
			FetchTimeoutSec: getEnvInt("UPLOAD_FETCH_TIMEOUT_SEC", 0),
			MaxFetchMB:      getEnvInt("UPLOAD_MAX_FETCH_MB", bodyLimitMB),
		},
		Cleanup: CleanupConfig{
			QueueKey:         getEnv("CLEANUP_QUEUE_KEY", "filearray:cleanup"),
			PollTimeoutSec:   getEnvInt("CLEANUP_POLL_TIMEOUT_SEC", 5),
			DeletesPerSecond: getEnvFloat("CLEANUP_DELETES_PER_SEC", 0),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Path:       getEnv("LOG_PATH", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 7),
			Compress:   getEnvBool("LOG_COMPRESS", false),
		},
		Tracing: TracingConfig{
			Disabled:    getEnvBool("OTEL_SDK_DISABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "filearray"),
			Protocol:    getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "")),
			Sampler:     getEnv("OTEL_TRACES_SAMPLER", "parentbased_traceidratio"),
			SamplerArg:  getEnv("OTEL_TRACES_SAMPLER_ARG", "1.0"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
