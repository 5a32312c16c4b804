package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Providers ProvidersConfig
	Export    ExportConfig
	Session   SessionConfig
	Scraper   ScraperConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
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

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// ProvidersConfig carries course-provider endpoints and credentials. Empty
// base URLs fall back to each client's public default.
type ProvidersConfig struct {
	CourseraBaseURL string
	CourseraAPIKey  string
	UdemyBaseURL    string
	UdemyAPIKey     string
	EdxBaseURL      string
	EdxAPIKey       string

	SearchLimit int32
}

type ScraperConfig struct {
	Headless bool
}

// ExportConfig points at the external delivery collaborators. Both are
// fire-and-forget from this service's point of view.
type ExportConfig struct {
	EmailServiceURL string
	PDFServiceURL   string
}

type SessionConfig struct {
	TTL time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
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

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          optInt32("DB_POOL_MAX_CONNS", 0),
		PoolMinConns:          optInt32("DB_POOL_MIN_CONNS", 0),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Providers = ProvidersConfig{
		CourseraBaseURL: opt("COURSERA_BASE_URL"),
		CourseraAPIKey:  opt("COURSERA_API_KEY"),
		UdemyBaseURL:    opt("UDEMY_BASE_URL"),
		UdemyAPIKey:     opt("UDEMY_API_KEY"),
		EdxBaseURL:      opt("EDX_BASE_URL"),
		EdxAPIKey:       opt("EDX_API_KEY"),

		SearchLimit: optInt32("PROVIDER_SEARCH_LIMIT", 10),
	}

	cfg.Scraper = ScraperConfig{
		Headless: strings.EqualFold(opt("SCRAPER_HEADLESS"), "true"),
	}

	cfg.Export = ExportConfig{
		EmailServiceURL: opt("EMAIL_SERVICE_URL"),
		PDFServiceURL:   opt("PDF_SERVICE_URL"),
	}

	cfg.Session = SessionConfig{
		TTL: optDuration("SESSION_TTL", 30*time.Minute),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func optInt32(key string, fallback int32) int32 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 0 {
		return fallback
	}
	return int32(v)
}
