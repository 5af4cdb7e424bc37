package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	CORSAllowOrigins string // comma separated

	// Customer notification channels
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	SMTPFrom          string
	WhatsAppAPIURL    string
	WhatsAppAPIToken  string
	NotifyTimeoutSecs int
	TrackingURL       string // Public complaint tracking page, complaint number is appended

	// Analytics digest
	DigestSchedule   string
	DigestPeriodDays int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "seedcare"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "seedcare"),

		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000, http://localhost:3001"),

		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUser:          getEnv("SMTP_USER", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:          getEnv("SMTP_FROM", ""),
		WhatsAppAPIURL:    getEnv("WHATSAPP_API_URL", ""),
		WhatsAppAPIToken:  getEnv("WHATSAPP_API_TOKEN", ""),
		NotifyTimeoutSecs: getEnvInt("NOTIFY_TIMEOUT_SECONDS", 15),
		TrackingURL:       getEnv("PUBLIC_TRACKING_URL", "http://localhost:3000/lacak/"),

		DigestSchedule:   getEnv("DIGEST_SCHEDULE", "0 1 * * *"),
		DigestPeriodDays: getEnvInt("DIGEST_PERIOD_DAYS", 30),
	}, nil
}

// IsProduction reports whether the service runs with production logging
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}
