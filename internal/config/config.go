package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// MongoConfig holds the document database connection settings.
type MongoConfig struct {
	URI        string
	Database   string
	TimeoutSec int
}

// DatabaseConfig holds PostgreSQL settings for the error-log sink.
// The sink is disabled when Host is empty.
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
}

// Enabled reports whether a log database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	PublicURL  string
	PresignTTL time.Duration
}

// AuthConfig holds JWT settings and the admin allow-list.
type AuthConfig struct {
	JWTSecret   string
	TokenTTL    time.Duration
	AdminEmails []string
}

// LLMConfig holds settings for the OpenAI-compatible chat completions API.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	FoodModel   string
	AdviceModel string
	VisionModel string
	Timeout     time.Duration
}

// DetectionConfig holds object-detection settings.
type DetectionConfig struct {
	AWSRegion     string
	MinConfidence float64
	MaxLabels     int
}

// ImageSearchConfig holds keys for the recipe image providers.
type ImageSearchConfig struct {
	UnsplashKey string
	PexelsKey   string
}

// RedisConfig is optional; advice history stays in memory when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AdviceConfig bounds the recent-advice history.
type AdviceConfig struct {
	HistorySize int
	MaxUsers    int
}

// SentryConfig holds error tracking settings.
type SentryConfig struct {
	DSN         string
	Environment string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	Timezone    string
	LogLevel    string
	CORSOrigins string
	BodyLimitMB int
	RateLimit   int

	Mongo       MongoConfig
	LogDatabase DatabaseConfig
	MinIO       MinIOConfig
	Auth        AuthConfig
	LLM         LLMConfig
	Detection   DetectionConfig
	ImageSearch ImageSearchConfig
	Redis       RedisConfig
	Advice      AdviceConfig
	Sentry      SentryConfig
}

// Location resolves Timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ErrMissingJWTSecret is returned by Validate when JWT_SECRET is unset.
var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable is required")

// Validate reports settings the server cannot start without.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 10),
		RateLimit:   getEnvInt("RATE_LIMIT_PER_MIN", 120),
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGO_DATABASE", "nutritrack"),
			TimeoutSec: getEnvInt("MONGO_TIMEOUT_SEC", 10),
		},
		LogDatabase: DatabaseConfig{
			Host:               getEnv("LOG_DB_HOST", ""),
			Port:               getEnv("LOG_DB_PORT", "5432"),
			User:               getEnv("LOG_DB_USER", ""),
			Password:           getEnv("LOG_DB_PASSWORD", ""),
			Name:               getEnv("LOG_DB_NAME", ""),
			SSLMode:            getEnv("LOG_DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("LOG_DB_MAX_OPEN_CONNS", 5),
			MaxIdleConns:       getEnvInt("LOG_DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetimeSec: getEnvInt("LOG_DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:   getEnv("MINIO_ENDPOINT", ""),
			AccessKey:  getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:  getEnv("MINIO_SECRET_KEY", ""),
			Bucket:     getEnv("MINIO_BUCKET", ""),
			UseSSL:     getEnvBool("MINIO_USE_SSL", false),
			PublicURL:  strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
			PresignTTL: time.Duration(getEnvInt("MINIO_PRESIGN_EXPIRY_HOURS", 24*7)) * time.Hour,
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", ""),
			TokenTTL:    getEnvDuration("JWT_EXPIRY", 24*time.Hour),
			AdminEmails: getEnvList("ADMIN_EMAILS"),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
			FoodModel:   getEnv("OPENAI_FOOD_MODEL", "gpt-3.5-turbo"),
			AdviceModel: getEnv("OPENAI_ADVICE_MODEL", "gpt-4o-mini"),
			VisionModel: getEnv("OPENAI_VISION_MODEL", "gpt-4o-mini"),
			Timeout:     getEnvDuration("AI_TIMEOUT", 30*time.Second),
		},
		Detection: DetectionConfig{
			AWSRegion:     getEnv("AWS_REGION", ""),
			MinConfidence: getEnvFloat("DETECTION_MIN_CONFIDENCE", 0.5),
			MaxLabels:     getEnvInt("DETECTION_MAX_LABELS", 10),
		},
		ImageSearch: ImageSearchConfig{
			UnsplashKey: getEnv("UNSPLASH_ACCESS_KEY", ""),
			PexelsKey:   getEnv("PEXELS_API_KEY", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Advice: AdviceConfig{
			HistorySize: getEnvInt("ADVICE_HISTORY_SIZE", 5),
			MaxUsers:    getEnvInt("ADVICE_MAX_USERS", 10000),
		},
		Sentry: SentryConfig{
			DSN:         getEnv("SENTRY_DSN", ""),
			Environment: getEnv("APP_ENV", "development"),
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

// getEnvDuration accepts Go durations ("45s") or bare seconds ("45").
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if i, err := strconv.Atoi(v); err == nil {
		return time.Duration(i) * time.Second
	}
	return def
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}
