// internal/config/config.go
package config

import (
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string

	// Auth
	JWTSecret            string
	JWTExpiresInSeconds  int64
	AuthVerboseErrors    bool
	AuthReturnResetToken bool

	// Solana gateway
	ChainGatewayURL string
	ChainNetwork    string
	ChainTimeout    time.Duration

	// SMTP (password reset mail)
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPUseTLS   bool
}

func Load() *Config {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		host := getEnv("PSQL_HOST", "localhost")
		port := getEnv("PSQL_PORT", "5432")
		user := getEnv("PSQL_USER", "postgres")
		password := getEnv("PSQL_PASSWORD", "postgres")
		dbName := getEnv("PSQL_DB_NAME", "soulboard")

		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(user, password),
			Host:   host + ":" + port,
			Path:   dbName,
		}
		q := u.Query()
		q.Set("sslmode", "disable")
		u.RawQuery = q.Encode()
		databaseURL = u.String()
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		DatabaseURL: databaseURL,

		JWTSecret:            getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiresInSeconds:  getEnvInt64("JWT_EXPIRES_IN_SECONDS", 3600),
		AuthVerboseErrors:    getEnvBool("AUTH_VERBOSE_ERRORS", false),
		AuthReturnResetToken: getEnvBool("AUTH_RETURN_RESET_TOKEN", false),

		ChainGatewayURL: getEnv("CHAIN_GATEWAY_URL", "http://localhost:9050"),
		ChainNetwork:    getEnv("SOLANA_NETWORK", "devnet"),
		ChainTimeout:    time.Duration(getEnvInt64("CHAIN_TIMEOUT_SECONDS", 30)) * time.Second,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@soulboard.local"),
		SMTPUseTLS:   getEnvBool("SMTP_USE_TLS", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
