package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// API Configuration
	APIPort        string
	APIHost        string
	APIEnvironment string

	// AI / text generation
	AIProvider    string // "openai" or "ollama"
	OpenAIAPIKey  string
	OpenAIModel   string
	OllamaBaseURL string
	OllamaModel   string
	AITemperature float64
	AIMaxTokens   int
	AITimeout     time.Duration

	// Redis (conversation history store)
	RedisURL string

	// Sentry
	SentryDSN         string
	SentryEnvironment string

	// Rate Limiting
	RateLimitRequestsPerMinute int
	RateLimitBurst             int

	// CORS
	CORSAllowedOrigins []string

	// Outbound delivery
	SendGridAPIKey     string
	EmailFrom          string
	EmailFromName      string
	WhatsAppGatewayURL string
	WhatsAppToken      string
	SMSFromNumber      string
	DefaultPhoneRegion string

	// Business context used in generated sequences
	BusinessName     string
	BusinessIndustry string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		// API
		APIPort:        getEnv("API_PORT", "8080"),
		APIHost:        getEnv("API_HOST", "0.0.0.0"),
		APIEnvironment: getEnv("API_ENVIRONMENT", "development"),

		// AI
		AIProvider:    getEnv("AI_PROVIDER", "openai"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.1:8b"),
		AITemperature: getEnvAsFloat("AI_TEMPERATURE", 0.7),
		AIMaxTokens:   getEnvAsInt("AI_MAX_TOKENS", 2000),
		AITimeout:     time.Duration(getEnvAsInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		// Sentry
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "development"),

		// Rate Limiting
		RateLimitRequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 60),
		RateLimitBurst:             getEnvAsInt("RATE_LIMIT_BURST", 10),

		// CORS
		CORSAllowedOrigins: []string{getEnv("CORS_ALLOWED_ORIGINS", "*")},

		// Outbound delivery
		SendGridAPIKey:     getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@leadpulse.io"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "LeadPulse"),
		WhatsAppGatewayURL: getEnv("WHATSAPP_GATEWAY_URL", ""),
		WhatsAppToken:      getEnv("WHATSAPP_TOKEN", ""),
		SMSFromNumber:      getEnv("SMS_FROM_NUMBER", ""),
		DefaultPhoneRegion: getEnv("DEFAULT_PHONE_REGION", "IN"),

		// Business context
		BusinessName:     getEnv("BUSINESS_NAME", "LeadPulse"),
		BusinessIndustry: getEnv("BUSINESS_INDUSTRY", "real_estate"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}
