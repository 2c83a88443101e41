package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AllowedOrigins []string // CORS allowed origins

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	// Base64-encoded service-account JSON for the identity gateway.
	// FirebaseCredentialsFile is a fallback path for local development.
	FirebaseCredentialsB64  string
	FirebaseCredentialsFile string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	KnowledgeFile string

	OTPTTL        time.Duration
	ResetGrantTTL time.Duration
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "8000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		FirebaseCredentialsB64:  getEnv("FIREBASE_CREDENTIALS_BASE64", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "./firebase-adminsdk.json"),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),

		KnowledgeFile: getEnv("KNOWLEDGE_FILE", "./eshop_knowledge.txt"),

		OTPTTL:        getEnvDuration("OTP_TTL", 5*time.Minute),
		ResetGrantTTL: getEnvDuration("RESET_GRANT_TTL", 10*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("90s", "5m") or a bare number
// of minutes.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Minute
		}
	}
	return fallback
}
