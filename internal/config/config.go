package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		raw, ok := os.LookupEnv(key)
		if !ok || raw == "" {
			return fallback
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			log.Fatalf("Error: environment variable %s must be a positive integer, got %q", key, raw)
		}
		return value
	}

	cfg := Config{
		Port: getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "sqlite3"),
			Name:   getEnv("DB_NAME", "rally.db"),
			DSN:    getEnv("DB_DSN", ""),
			Turso: TursoConfig{
				PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
				AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
			},
		},
		Slack: SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnv("SLACK_CHANNEL_ID", ""),
		},
		ProjectID:    getEnv("GCP_PROJECT", ""),
		ResultsTopic: getEnv("RESULTS_TOPIC", "result-recorded"),
		Paging: PagingConfig{
			DefaultLimit: getInt("PAGE_DEFAULT_LIMIT", 10),
			MaxLimit:     getInt("PAGE_MAX_LIMIT", 100),
		},
		AnalyticsConfig: getEnv("ANALYTICS_CONFIG", ""),
	}
	if cfg.Database.Driver == "pgx" && cfg.Database.DSN == "" {
		log.Fatal("Error: DB_DSN is required when DB_DRIVER=pgx")
	}
	if cfg.Paging.DefaultLimit > cfg.Paging.MaxLimit {
		log.Warn("PAGE_DEFAULT_LIMIT exceeds PAGE_MAX_LIMIT, capping", "default", cfg.Paging.DefaultLimit, "max", cfg.Paging.MaxLimit)
		cfg.Paging.DefaultLimit = cfg.Paging.MaxLimit
	}
	return cfg
}
