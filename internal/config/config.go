package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// StoreBackend selects where tokens are persisted between runs.
type StoreBackend string

const (
	StoreBackendFile     StoreBackend = "file"
	StoreBackendRedis    StoreBackend = "redis"
	StoreBackendMemory   StoreBackend = "memory"
	StoreBackendDisabled StoreBackend = "disabled"
)

// Config aggregates runtime configuration for the CLI and the stub server.
type Config struct {
	Client ClientConfig
	Store  StoreConfig
	Redis  RedisConfig
	Logger LoggerConfig
	Stub   StubConfig
}

// ClientConfig controls how the API client reaches the Tasker backend.
type ClientConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// StoreConfig selects and locates the token store backend.
type StoreConfig struct {
	Backend StoreBackend
	Path    string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// StubConfig configures the local stub API started by `tasker serve`.
type StubConfig struct {
	Host                  string
	Port                  string
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	PostgresDSN           string
	PostgresMaxConns      int32
	PostgresMinConns      int32
	RunMigrations         bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := StoreBackend(getEnv("TASKER_STORE_BACKEND", string(StoreBackendFile)))
	switch backend {
	case StoreBackendFile, StoreBackendRedis, StoreBackendMemory, StoreBackendDisabled:
	default:
		return nil, fmt.Errorf("invalid TASKER_STORE_BACKEND: %q", backend)
	}

	storePath := getEnv("TASKER_STORE_PATH", "")
	if storePath == "" {
		storePath = defaultStorePath()
	}

	cfg := &Config{
		Client: ClientConfig{
			BaseURL:        getEnv("TASKER_API_URL", "http://localhost:3000/api"),
			TimeoutSeconds: getEnvAsInt("TASKER_API_TIMEOUT_SECONDS", 30),
		},
		Store: StoreConfig{
			Backend: backend,
			Path:    storePath,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Stub: StubConfig{
			Host:                  getEnv("STUB_HOST", "127.0.0.1"),
			Port:                  getEnv("STUB_PORT", "3000"),
			JWTSecret:             getEnv("STUB_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("STUB_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("STUB_BCRYPT_COST", 10),
			PostgresDSN:           os.Getenv("STUB_POSTGRES_DSN"),
			PostgresMaxConns:      int32(getEnvAsInt("STUB_POSTGRES_MAX_CONNS", 10)),
			PostgresMinConns:      int32(getEnvAsInt("STUB_POSTGRES_MIN_CONNS", 2)),
			RunMigrations:         getEnvAsBool("STUB_RUN_MIGRATIONS", true),
		},
	}

	return cfg, nil
}

// Addr returns the stub server bind address.
func (s StubConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// AccessTokenTTL returns the configured token lifetime.
func (s StubConfig) AccessTokenTTL() time.Duration {
	if s.AccessTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(s.AccessTokenTTLMinutes) * time.Minute
}

// Timeout returns the HTTP client timeout duration.
func (c ClientConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".tasker", "credentials.json")
	}
	return filepath.Join(dir, "tasker", "credentials.json")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
