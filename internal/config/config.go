package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is read once at process start and treated as immutable afterwards.
// Components receive it (or the fields they need) explicitly.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AppPort string
	AppEnv  string

	JWTSecret string

	// OpenPix / Woovi
	OpenPixBaseURL string
	OpenPixAppID   string
	WebhookSecret  string
	PlatformPixKey string
	PlatformFeePct int // platform share of each charge, percent

	AllowedOrigins  string
	InternalAuthKey string
}

const defaultOpenPixBaseURL = "https://api.openpix.com.br/api/v1"

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		AppPort: os.Getenv("APP_PORT"),
		AppEnv:  os.Getenv("APP_ENV"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		OpenPixBaseURL: os.Getenv("OPENPIX_BASE_URL"),
		OpenPixAppID:   os.Getenv("OPENPIX_APP_ID"),
		WebhookSecret:  os.Getenv("OPENPIX_WEBHOOK_SECRET"),
		PlatformPixKey: os.Getenv("PLATFORM_PIX_KEY"),
		PlatformFeePct: envInt("PLATFORM_FEE_PCT", 15),

		AllowedOrigins:  os.Getenv("ALLOWED_ORIGINS"),
		InternalAuthKey: os.Getenv("INTERNAL_SECRET_KEY"),
	}

	if cfg.OpenPixBaseURL == "" {
		cfg.OpenPixBaseURL = defaultOpenPixBaseURL
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}
