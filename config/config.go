package config

import (
	"log"

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

	// Redis configuration.
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB     int    `mapstructure:"REDIS_SESSION_DB"`
	RedisCacheDB       int    `mapstructure:"REDIS_CACHE_DB"`
	RedisTicketQueueDB int    `mapstructure:"REDIS_TICKET_QUEUE_DB"`

	// Sessions expire after this much inactivity, in minutes.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// Amadeus flight-offers API credentials.
	AmadeusAPIKey    string `mapstructure:"AMADEUS_API_KEY"`
	AmadeusAPISecret string `mapstructure:"AMADEUS_API_SECRET"`
	AmadeusBaseURL   string `mapstructure:"AMADEUS_BASE_URL"`

	// Stripe secret key for payment intents.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Gemini API key for phrasing assistant replies.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Directory where rendered tickets are written.
	TicketDir string `mapstructure:"TICKET_DIR"`
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
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_CACHE_DB", 1)
	viper.SetDefault("REDIS_TICKET_QUEUE_DB", 2)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("AMADEUS_BASE_URL", "https://test.api.amadeus.com")
	viper.SetDefault("TICKET_DIR", "tickets")

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
