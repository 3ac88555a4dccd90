package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	// Proxies (IPs or CIDRs) whose X-Forwarded-For is believed. Empty trusts none.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Stripe.
	StripeKey                     string `mapstructure:"STRIPE_KEY"`
	StripeWebhookSecret           string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	StripeWebhookToleranceSeconds int    `mapstructure:"STRIPE_WEBHOOK_TOLERANCE_SECONDS"`

	// Firebase Cloud Messaging.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	NotificationsEnabled    bool   `mapstructure:"NOTIFICATIONS_ENABLED"`

	// Availability and pricing.
	DefaultTimezone        string  `mapstructure:"DEFAULT_TIMEZONE"`
	SlotIntervalMinutes    int     `mapstructure:"SLOT_INTERVAL_MINUTES"`
	TravelBaseFee          float64 `mapstructure:"TRAVEL_BASE_FEE"`
	TravelPerKmRate        float64 `mapstructure:"TRAVEL_PER_KM_RATE"`
	TravelMaxFee           float64 `mapstructure:"TRAVEL_MAX_FEE"`
	TravelCurrency         string  `mapstructure:"TRAVEL_CURRENCY"`
	ProfileCacheTTLSeconds int     `mapstructure:"PROFILE_CACHE_TTL_SECONDS"`
	MetricsEnabled         bool    `mapstructure:"METRICS_ENABLED"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("TRUSTED_PROXIES", []string{})
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "homepro")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("STRIPE_WEBHOOK_TOLERANCE_SECONDS", 300)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("NOTIFICATIONS_ENABLED", false)
	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("SLOT_INTERVAL_MINUTES", 30)
	viper.SetDefault("TRAVEL_BASE_FEE", 5.0)
	viper.SetDefault("TRAVEL_PER_KM_RATE", 0.5)
	viper.SetDefault("TRAVEL_MAX_FEE", 25.0)
	viper.SetDefault("TRAVEL_CURRENCY", "usd")
	viper.SetDefault("PROFILE_CACHE_TTL_SECONDS", 300)
	viper.SetDefault("METRICS_ENABLED", true)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// DefaultLocation is the zone used for professionals without a valid timezone.
func DefaultLocation() *time.Location {
	if loc, err := time.LoadLocation(AppConfig.DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// ProfileCacheTTL is how long a professional profile stays in Redis.
func ProfileCacheTTL() time.Duration {
	return time.Duration(AppConfig.ProfileCacheTTLSeconds) * time.Second
}

// WebhookTolerance is the accepted age of a signed Stripe payload.
func WebhookTolerance() time.Duration {
	return time.Duration(AppConfig.StripeWebhookToleranceSeconds) * time.Second
}
