package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	Timezone          string `mapstructure:"TIMEZONE"`

	// Peers whose X-Forwarded-For is honoured; empty trusts none.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB      int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB      int    `mapstructure:"REDIS_QUEUE_DB"`
	WorkerConcurrency int    `mapstructure:"WORKER_CONCURRENCY"`

	// Advisory plan generation.
	GeminiAPIKey        string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel         string        `mapstructure:"GEMINI_MODEL"`
	AdvisorTimeout      time.Duration `mapstructure:"ADVISOR_TIMEOUT"`
	AdvisorCacheTTL     time.Duration `mapstructure:"ADVISOR_CACHE_TTL"`
	CollaboratorTimeout time.Duration `mapstructure:"COLLABORATOR_TIMEOUT"`

	// Pricing.
	SettlementCurrency   string        `mapstructure:"SETTLEMENT_CURRENCY"`
	USDExchangeRate      float64       `mapstructure:"USD_EXCHANGE_RATE"`
	ExchangeRateAPIKey   string        `mapstructure:"EXCHANGE_RATE_API_KEY"`
	DuplicateWindow      time.Duration `mapstructure:"DUPLICATE_WINDOW"`
	ServiceFeeMedical    float64       `mapstructure:"SERVICE_FEE_MEDICAL_RATE"`
	ServiceFeeFlight     float64       `mapstructure:"SERVICE_FEE_FLIGHT_RATE"`
	ServiceFeeHotel      float64       `mapstructure:"SERVICE_FEE_HOTEL_RATE"`
	ServiceFeeMinMedical float64       `mapstructure:"SERVICE_FEE_MEDICAL_MIN"`
	ServiceFeeMinFlight  float64       `mapstructure:"SERVICE_FEE_FLIGHT_MIN"`
	ServiceFeeMinHotel   float64       `mapstructure:"SERVICE_FEE_HOTEL_MIN"`
	ServiceFeeWaiveZero  bool          `mapstructure:"SERVICE_FEE_WAIVE_ZERO"`

	// Secret used to derive the travel-document encryption key.
	DocumentKey string `mapstructure:"DOCUMENT_KEY"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("TIMEZONE", "Asia/Shanghai")
	v.SetDefault("TRUSTED_PROXIES", []string{})
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "gochinamed")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("WORKER_CONCURRENCY", 10)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "models/gemini-1.5-flash")
	v.SetDefault("ADVISOR_TIMEOUT", "20s")
	v.SetDefault("ADVISOR_CACHE_TTL", "30m")
	v.SetDefault("COLLABORATOR_TIMEOUT", "5s")
	v.SetDefault("SETTLEMENT_CURRENCY", "CNY")
	v.SetDefault("USD_EXCHANGE_RATE", 7.2)
	v.SetDefault("EXCHANGE_RATE_API_KEY", "")
	v.SetDefault("DUPLICATE_WINDOW", "5m")
	v.SetDefault("SERVICE_FEE_MEDICAL_RATE", 0.06)
	v.SetDefault("SERVICE_FEE_FLIGHT_RATE", 0.03)
	v.SetDefault("SERVICE_FEE_HOTEL_RATE", 0.05)
	v.SetDefault("SERVICE_FEE_MEDICAL_MIN", 100)
	v.SetDefault("SERVICE_FEE_FLIGHT_MIN", 50)
	v.SetDefault("SERVICE_FEE_HOTEL_MIN", 50)
	v.SetDefault("SERVICE_FEE_WAIVE_ZERO", false)
	v.SetDefault("DOCUMENT_KEY", "")
}

// Load reads config.yaml (if any) and the environment through v.
func Load(v *viper.Viper) (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DocumentKey == "" && cfg.Env == "production" {
		log.Fatal("DOCUMENT_KEY must be set in production")
	}
	AppConfig = cfg
}

// Location returns the scheduling time zone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil || c.Timezone == "" {
		return time.UTC
	}
	return loc
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
