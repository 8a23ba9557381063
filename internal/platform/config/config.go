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
	RateLimit    string

	// Object storage for receipt attachments
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3UseSSL    bool   `mapstructure:"S3_USE_SSL"`

	// Dashboard cache
	RedisAddress  string `mapstructure:"REDIS_ADDRESS"`
	StatsCacheTTL time.Duration

	// Due date offset applied to receivables created for partial deposits
	DepositRemainderDueDays int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("S3_ENDPOINT", "localhost:9000")
	viper.SetDefault("S3_ACCESS_KEY", "")
	viper.SetDefault("S3_SECRET_KEY", "")
	viper.SetDefault("S3_BUCKET", "hisabat-receipts")
	viper.SetDefault("S3_USE_SSL", false)
	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("STATS_CACHE_TTL", "5m")
	viper.SetDefault("DEPOSIT_REMAINDER_DUE_DAYS", 30)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.S3Endpoint = viper.GetString("S3_ENDPOINT")
	cfg.S3AccessKey = viper.GetString("S3_ACCESS_KEY")
	cfg.S3SecretKey = viper.GetString("S3_SECRET_KEY")
	cfg.S3Bucket = viper.GetString("S3_BUCKET")
	cfg.S3UseSSL = viper.GetBool("S3_USE_SSL")
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		log.Println("Warning: S3_ACCESS_KEY / S3_SECRET_KEY not set. Receipt storage will not function.")
	}

	cfg.RedisAddress = viper.GetString("REDIS_ADDRESS")
	if cfg.RedisAddress == "" {
		log.Println("Warning: REDIS_ADDRESS not set. Dashboard stats will be computed on every request.")
	}

	statsTTLStr := viper.GetString("STATS_CACHE_TTL")
	statsTTL, err := time.ParseDuration(statsTTLStr)
	if err != nil {
		statsTTL = 5 * time.Minute
		if statsTTLStr != "" {
			log.Printf("Warning: Invalid value for STATS_CACHE_TTL ('%s'). Defaulting to %s.\n", statsTTLStr, statsTTL.String())
		}
	}
	cfg.StatsCacheTTL = statsTTL

	cfg.DepositRemainderDueDays = viper.GetInt("DEPOSIT_REMAINDER_DUE_DAYS")
	if cfg.DepositRemainderDueDays <= 0 {
		cfg.DepositRemainderDueDays = 30
		log.Printf("Warning: DEPOSIT_REMAINDER_DUE_DAYS must be positive. Defaulting to %d.\n", cfg.DepositRemainderDueDays)
	}

	return cfg, nil
}
