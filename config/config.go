package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
// Missing values never fail Load; components report them as configuration errors when called.
type Config struct {
	Server   ServerConfig
	Sanity   SanityConfig
	Sheets   SheetsConfig
	Webhook  WebhookConfig
	Redis    RedisConfig
	Site     SiteConfig
	LogLevel string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// SanityConfig holds content store (Sanity) settings.
type SanityConfig struct {
	ProjectID      string
	Dataset        string
	Token          string
	APIVersion     string // e.g. 2024-01-01
	TimeoutSeconds int
}

// SheetsConfig holds the registration tracking spreadsheet settings.
type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string // tab name, default Sheet1
	CredentialsFile string // path to a service-account JSON key; takes precedence over the fields below
	ProjectID       string
	PrivateKeyID    string
	PrivateKey      string // literal "\n" sequences are unescaped
	ClientEmail     string
	ClientID        string
	CertURL         string
	Timezone        string // IANA zone used to format the date column
	TimeoutSeconds  int
}

// WebhookConfig holds the change-notification webhook settings.
type WebhookConfig struct {
	Secret       string // empty = signatures are not verified
	MaxBodyBytes int64
}

// RedisConfig holds Redis connection settings for the content cache.
type RedisConfig struct {
	Addr            string // empty = cache disabled
	Password        string
	DB              int
	CacheTTLSeconds int
}

// SiteConfig holds public site settings.
type SiteConfig struct {
	BaseURL string // prefix for participant links; empty = relative links
}

// HasCredentials reports whether a service account can be built from this config.
func (c SheetsConfig) HasCredentials() bool {
	if c.CredentialsFile != "" {
		return true
	}
	return c.ClientEmail != "" && c.PrivateKey != ""
}

// Load reads configuration from environment, with optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load() // .env

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Sanity: SanityConfig{
			ProjectID:      getEnv("SANITY_PROJECT_ID", os.Getenv("NEXT_PUBLIC_SANITY_PROJECT_ID")),
			Dataset:        getEnv("SANITY_DATASET", getEnv("NEXT_PUBLIC_SANITY_DATASET", "production")),
			Token:          getEnv("SANITY_API_TOKEN", ""),
			APIVersion:     getEnv("SANITY_API_VERSION", "2024-01-01"),
			TimeoutSeconds: getEnvInt("SANITY_TIMEOUT_SEC", 15),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   getEnv("GOOGLE_SHEET_ID", ""),
			SheetName:       getEnv("GOOGLE_SHEET_NAME", "Sheet1"),
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
			ProjectID:       getEnv("GOOGLE_PROJECT_ID", ""),
			PrivateKeyID:    getEnv("GOOGLE_PRIVATE_KEY_ID", ""),
			PrivateKey:      strings.ReplaceAll(getEnv("GOOGLE_PRIVATE_KEY", ""), `\n`, "\n"),
			ClientEmail:     getEnv("GOOGLE_CLIENT_EMAIL", ""),
			ClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
			CertURL:         getEnv("GOOGLE_CERT_URL", ""),
			Timezone:        getEnv("SHEETS_TIMEZONE", "UTC"),
			TimeoutSeconds:  getEnvInt("SHEETS_TIMEOUT_SEC", 15),
		},
		Webhook: WebhookConfig{
			Secret:       getEnv("SANITY_WEBHOOK_SECRET", ""),
			MaxBodyBytes: int64(getEnvInt("WEBHOOK_MAX_BODY_BYTES", 1<<20)),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", ""),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvInt("REDIS_DB", 0),
			CacheTTLSeconds: getEnvInt("CONTENT_CACHE_TTL_SEC", 60),
		},
		Site: SiteConfig{
			BaseURL: strings.TrimRight(getEnv("SITE_BASE_URL", ""), "/"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
