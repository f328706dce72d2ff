package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath string
	Backend      string // "sqlite" or "memory"
	Port           string
	LogLevel       string
	Environment    string
	AllowedOrigins string

	SpoonacularAPIKey  string
	SpoonacularBaseURL string
	RecipeDailyQuota   int
	RecipePerMinute    int

	MailgunDomain      string
	MailgunAPIKey      string
	MailgunSenderEmail string
	MailgunSenderName  string
	NotifyEmail        string
}

func Load() *Config {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath: getEnv("DATABASE_PATH", "pantry.db"),
		Backend:      getEnv("STORAGE_BACKEND", "sqlite"),
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		Environment:  getEnv("ENVIRONMENT", "production"),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:8080"),

		SpoonacularAPIKey:  getEnv("SPOONACULAR_API_KEY", ""),
		SpoonacularBaseURL: getEnv("SPOONACULAR_BASE_URL", "https://api.spoonacular.com"),
		RecipeDailyQuota:   getEnvInt("RECIPE_DAILY_QUOTA", 150),
		RecipePerMinute:    getEnvInt("RECIPE_PER_MINUTE", 5),

		MailgunDomain:      getEnv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:      getEnv("MAILGUN_API_KEY", ""),
		MailgunSenderEmail: getEnv("MAILGUN_SENDER_EMAIL", "pantry@localhost"),
		MailgunSenderName:  getEnv("MAILGUN_SENDER_NAME", "Pantry"),
		NotifyEmail:        getEnv("NOTIFY_EMAIL", ""),
	}
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
