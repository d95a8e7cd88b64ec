package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Recurring document generation
	RecurringCronSpec  string
	RecurringBatchSize int

	// Rate limiting
	RateLimitPeriod   time.Duration
	RateLimitRequests int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RECURRING_CRON_SPEC", "0 0 * * *")
	viper.SetDefault("RECURRING_BATCH_SIZE", 50)
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RecurringCronSpec = viper.GetString("RECURRING_CRON_SPEC")

	cfg.RecurringBatchSize = viper.GetInt("RECURRING_BATCH_SIZE")
	if cfg.RecurringBatchSize <= 0 {
		log.Printf("Warning: Invalid value for RECURRING_BATCH_SIZE (%d). Defaulting to 50.\n", cfg.RecurringBatchSize)
		cfg.RecurringBatchSize = 50
	}

	rateLimitPeriodStr := viper.GetString("RATE_LIMIT_PERIOD")
	rateLimitPeriod, err := time.ParseDuration(rateLimitPeriodStr)
	if err != nil {
		rateLimitPeriod = time.Minute
		if rateLimitPeriodStr != "" {
			log.Printf("Warning: Invalid value for RATE_LIMIT_PERIOD ('%s'). Defaulting to %s.\n", rateLimitPeriodStr, rateLimitPeriod.String())
		}
	}
	cfg.RateLimitPeriod = rateLimitPeriod
	cfg.RateLimitRequests = viper.GetInt64("RATE_LIMIT_REQUESTS")

	return cfg, nil
}
