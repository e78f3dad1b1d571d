package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	JWT      JWTConfig
	Search   SearchConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Database DatabaseConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type BackendConfig struct {
	BaseURL    string
	AccountURL string
	Timeout    time.Duration
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type SearchConfig struct {
	Debounce      time.Duration
	AdminFetchMax int
	PageSize      int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type NATSConfig struct {
	URL string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

func (d DatabaseConfig) Configured() bool {
	return strings.TrimSpace(d.DBHost) != "" && strings.TrimSpace(d.DBName) != ""
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads the environment, after merging a .env file when one exists.
// Variables already set in the process environment win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Backend = BackendConfig{
		BaseURL:    req("BACKEND_BASE_URL"),
		AccountURL: opt("ACCOUNT_URL"),
		Timeout:    durationOr(opt("BACKEND_TIMEOUT"), 10*time.Second),
	}

	cfg.JWT = JWTConfig{
		Secret: req("JWT_SECRET"),
		Issuer: opt("JWT_ISSUER"),
	}

	cfg.Search = SearchConfig{
		Debounce:      durationOr(opt("SEARCH_DEBOUNCE"), 350*time.Millisecond),
		AdminFetchMax: intOr(opt("ADMIN_FETCH_MAX"), 200),
		PageSize:      intOr(opt("PAGE_SIZE"), 10),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      time.Duration(intOr(opt("REDIS_TTL"), 60)) * time.Second,
	}

	cfg.NATS = NATSConfig{URL: opt("NATS_URL")}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        durationOr(opt("DB_CONNECT_TIMEOUT"), 5*time.Second),
		PoolMaxConns:          int32(intOr(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:          int32(intOr(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   durationOr(opt("DB_POOL_MAX_CONN_LIFETIME"), 0),
		PoolMaxConnIdleTime:   durationOr(opt("DB_POOL_MAX_CONN_IDLE_TIME"), 0),
		PoolHealthCheckPeriod: durationOr(opt("DB_POOL_HEALTH_CHECK_PERIOD"), 0),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

// LoadAuditor reads only what the audit consumer needs.
func LoadAuditor() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg.App.AppName = strings.TrimSpace(os.Getenv("APP_NAME"))
	cfg.NATS.URL = req("NATS_URL")
	cfg.Database = DatabaseConfig{
		DBHost:         req("DB_HOST"),
		DBPort:         req("DB_PORT"),
		DBName:         req("DB_NAME"),
		DBUser:         req("DB_USER"),
		DBPassword:     strings.TrimSpace(os.Getenv("DB_PASSWORD")),
		DBSSLMode:      strings.TrimSpace(os.Getenv("DB_SSL_MODE")),
		ConnectTimeout: durationOr(strings.TrimSpace(os.Getenv("DB_CONNECT_TIMEOUT")), 5*time.Second),
	}
	if cfg.Database.DBSSLMode == "" {
		cfg.Database.DBSSLMode = "disable"
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	return cfg, nil
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func intOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
