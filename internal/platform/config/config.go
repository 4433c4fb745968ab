package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverBolt     = "bolt"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StorageDriver string

	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string

	BoltPath string

	ChartOfAccountsPath string
	SequenceMaxRetries  int

	RateLimit          string
	PosthogAPIKey      string
	PosthogEndpoint    string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("BOLT_PATH", "ledger.db")
	viper.SetDefault("CHART_OF_ACCOUNTS_PATH", "")
	viper.SetDefault("SEQUENCE_MAX_RETRIES", 5)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	// Environment variables override both the defaults and values loaded from .env.
	viper.AutomaticEnv()

	cfg := &Config{
		Port:                viper.GetString("PORT"),
		IsProduction:        viper.GetBool("IS_PRODUCTION"),
		StorageDriver:       strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		DatabaseURL:         viper.GetString("PGSQL_URL"),
		EnableDBCheck:       viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:      viper.GetString("MIGRATIONS_PATH"),
		BoltPath:            viper.GetString("BOLT_PATH"),
		ChartOfAccountsPath: viper.GetString("CHART_OF_ACCOUNTS_PATH"),
		SequenceMaxRetries:  viper.GetInt("SEQUENCE_MAX_RETRIES"),
		RateLimit:           viper.GetString("RATE_LIMIT"),
		PosthogAPIKey:       viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:     viper.GetString("POSTHOG_ENDPOINT"),
		CORSAllowedOrigins:  splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER is %q", StorageDriverPostgres)
		}
	case StorageDriverBolt:
		if cfg.BoltPath == "" {
			return nil, fmt.Errorf("BOLT_PATH is required when STORAGE_DRIVER is %q", StorageDriverBolt)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want %q or %q)", cfg.StorageDriver, StorageDriverPostgres, StorageDriverBolt)
	}

	if cfg.SequenceMaxRetries < 1 {
		log.Printf("Warning: SEQUENCE_MAX_RETRIES must be at least 1 (got %d). Defaulting to 5.\n", cfg.SequenceMaxRetries)
		cfg.SequenceMaxRetries = 5
	}

	if cfg.PosthogAPIKey == "" {
		log.Println("Warning: POSTHOG_API_KEY not set. Usage analytics disabled.")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
