package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

const (
	NotifierLog   = "log"
	NotifierQueue = "queue"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	DBMaxConns        int
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	LogLevel          string

	// Per-call bound on database work.
	DBTimeout time.Duration
	// Bound on a single notification delivery.
	NotifyTimeout time.Duration

	Notifier      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MetricsEnabled bool
	MetricsPath    string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	var err error

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	if cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}

	// JWT secret is required for verifying tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "")

	if cfg.DBTimeout, err = getEnvAsDuration("DB_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.NotifyTimeout, err = getEnvAsDuration("NOTIFY_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	cfg.Notifier = getEnv("NOTIFIER", NotifierLog)
	if cfg.Notifier != NotifierLog && cfg.Notifier != NotifierQueue {
		return nil, fmt.Errorf("invalid NOTIFIER %q: must be %q or %q", cfg.Notifier, NotifierLog, NotifierQueue)
	}

	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	if cfg.MetricsEnabled, err = getEnvAsBool("METRICS_ENABLED", true); err != nil {
		return nil, err
	}
	cfg.MetricsPath = getEnv("METRICS_PATH", "/metrics")

	return cfg, nil
}

// RedisOpt returns the connection options for the notification queue.
func (c *Config) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration parses values such as "15m" or "2s".
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return val, nil
}
