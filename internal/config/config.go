package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Counter backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMySQL    = "mysql"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, console

	// Submission counter
	CounterBackend  string        // memory, redis, postgres, sqlite, mysql
	CounterCacheTTL time.Duration // 0 disables the read cache
	RedisURL        string
	DatabaseURL     string
	SQLitePath      string
	MySQLDSN        string

	// Contact form
	ContactDelay     time.Duration
	ContactRecipient string

	// SMTP
	SMTPEnabled  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // none, tls, starttls

	// Spam ticker
	SpamTickerStart    int64
	SpamTickerInterval time.Duration

	// Content
	ContentFile string // optional YAML override of the embedded content

	// Features
	MetricsEnabled bool

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Spam Lab"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:                getEnv("ENV", "development"),
		ServerAddr:         getEnv("SERVER_ADDR", ":3000"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:3000"),
		TLSEnabled:         getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:        getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:         getEnv("TLS_KEY_FILE", ""),
		SessionSecret:      getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:        getEnv("CORS_ORIGINS", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
		CounterBackend:     getEnv("COUNTER_BACKEND", BackendMemory),
		CounterCacheTTL:    getEnvDuration("COUNTER_CACHE_TTL", time.Second),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:        getEnv("DATABASE_URL", "postgres://localhost:5432/spamlab?sslmode=disable"),
		SQLitePath:         getEnv("SQLITE_PATH", "spamlab.db"),
		MySQLDSN:           getEnv("MYSQL_DSN", "spamlab:spamlab@tcp(localhost:3306)/spamlab"),
		ContactDelay:       getEnvDuration("CONTACT_DELAY", time.Second),
		ContactRecipient:   getEnv("CONTACT_RECIPIENT", ""),
		SMTPEnabled:        getEnv("SMTP_ENABLED", "") != "",
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:           getEnv("SMTP_FROM", ""),
		SMTPFromName:       getEnv("SMTP_FROM_NAME", "Spam Lab"),
		SMTPTLS:            getEnv("SMTP_TLS", "starttls"),
		SpamTickerStart:    int64(getEnvInt("SPAM_TICKER_START", 107493221)),
		SpamTickerInterval: getEnvDuration("SPAM_TICKER_INTERVAL", time.Second),
		ContentFile:        getEnv("CONTENT_FILE", ""),
		MetricsEnabled:     getEnv("METRICS_ENABLED", "true") == "true",

		SiteTitle:   getEnv("SITE_TITLE", "Spam Lab"),
		SiteTagline: getEnv("SITE_TAGLINE", "Learn how machines tell spam from ham"),
		SiteFooter:  getEnv("SITE_FOOTER", "Spam Lab - an interactive course on email classification"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if outgoing mail is fully configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPEnabled && c.SMTPHost != "" && c.SMTPFrom != ""
}

// UsesDatabase returns true if the counter backend needs the Postgres pool.
func (c *Config) UsesDatabase() bool {
	return c.CounterBackend == BackendPostgres
}

// UsesRedis returns true if the counter backend is Redis.
func (c *Config) UsesRedis() bool {
	return c.CounterBackend == BackendRedis
}
