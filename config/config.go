package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration. Redis only brokers the asynq warm-up queue; the
	// data and recommendation caches are strictly in-process.
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisWarmupQueueDB int    `mapstructure:"REDIS_WARMUP_QUEUE_DB"`

	// Ranking backend.
	RankingAPIURL       string `mapstructure:"RANKING_API_URL"`
	RankingTimeoutSecs  int    `mapstructure:"RANKING_TIMEOUT_SECS"`
	RankingMaxRetries   int    `mapstructure:"RANKING_MAX_RETRIES"`
	RankingRetryDelayMs int    `mapstructure:"RANKING_RETRY_DELAY_MS"`

	// Cache tuning.
	CatalogCacheTTLMins   int `mapstructure:"CATALOG_CACHE_TTL_MINS"`
	RecommendCacheTTLMins int `mapstructure:"RECOMMEND_CACHE_TTL_MINS"`
	UserCacheMaxEntries   int `mapstructure:"USER_CACHE_MAX_ENTRIES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_WARMUP_QUEUE_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("RANKING_API_URL", "http://localhost:8000")
	viper.SetDefault("RANKING_TIMEOUT_SECS", 8)
	viper.SetDefault("RANKING_MAX_RETRIES", 2)
	viper.SetDefault("RANKING_RETRY_DELAY_MS", 1000)
	viper.SetDefault("CATALOG_CACHE_TTL_MINS", 5)
	viper.SetDefault("RECOMMEND_CACHE_TTL_MINS", 10)
	viper.SetDefault("USER_CACHE_MAX_ENTRIES", 100)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// RankingTimeout returns the per-attempt budget for the remote ranking call.
func RankingTimeout() time.Duration {
	return time.Duration(AppConfig.RankingTimeoutSecs) * time.Second
}

// RankingRetryDelay returns the base delay between ranking retries; the
// actual wait grows linearly with the attempt number.
func RankingRetryDelay() time.Duration {
	return time.Duration(AppConfig.RankingRetryDelayMs) * time.Millisecond
}

// CatalogCacheTTL returns the freshness window for catalog and review reads.
func CatalogCacheTTL() time.Duration {
	return time.Duration(AppConfig.CatalogCacheTTLMins) * time.Minute
}

// RecommendCacheTTL returns the freshness window for ranked recommendation
// lists. Longer than the catalog TTL because rankings cost more to rebuild.
func RecommendCacheTTL() time.Duration {
	return time.Duration(AppConfig.RecommendCacheTTLMins) * time.Minute
}
