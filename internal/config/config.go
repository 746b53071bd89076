package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"chores-app-go/pkg/logger"
)

var ErrAPIKeyRequired = errors.New("API_KEY is required")

type Config struct {
	HTTPPort       string
	Env            string
	APIKey         string
	RequestTimeout time.Duration
	CORSOrigins    []string
	GroupCacheTTL  time.Duration
	Reminders      RemindersConfig
	DB             DBConfig
	Metrics        MetricsConfig
	Tracing        TracingConfig
	RateLimit      RateLimitConfig
}

type RemindersConfig struct {
	LookaheadHours int
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	Tracing         bool
}

type MetricsConfig struct {
	Enabled bool
}

type TracingConfig struct {
	Endpoint    string
	ServiceName string
	SampleRatio float64
}

func (c TracingConfig) Enabled() bool {
	return c.Endpoint != ""
}

type RateLimitConfig struct {
	RedisAddr     string
	RedisPassword string
	Requests      int64
	Window        time.Duration
}

func (c RateLimitConfig) Enabled() bool {
	return c.RedisAddr != "" && c.Requests > 0 && c.Window > 0
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		APIKey:         strings.TrimSpace(os.Getenv("API_KEY")),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		CORSOrigins:    getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		GroupCacheTTL:  getEnvDuration("GROUP_CACHE_TTL", 5*time.Minute),
		Reminders: RemindersConfig{
			LookaheadHours: getEnvInt("REMINDER_LOOKAHEAD_HOURS", 48),
		},
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "chores"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
		},
		Tracing: TracingConfig{
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "chores-app"),
			SampleRatio: getEnvFloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
		RateLimit: RateLimitConfig{
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			Requests:      int64(getEnvInt("RATE_LIMIT_REQUESTS", 120)),
			Window:        getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}
	cfg.DB.Tracing = cfg.Tracing.Enabled()

	if cfg.APIKey == "" {
		return Config{}, ErrAPIKeyRequired
	}
	if cfg.Reminders.LookaheadHours <= 0 {
		cfg.Reminders.LookaheadHours = 48
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed < 0 || parsed > 1 {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
