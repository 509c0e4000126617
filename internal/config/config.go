package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	Port        string
	DatabaseURL string
	Version     string
	LogLevel    string

	// OpenAI
	OpenAIKey      string
	OpenAIModel    string
	EmbeddingModel string
	Temperature    float64

	// Vector index
	QdrantHost        string
	QdrantPort        int
	QdrantCollection  string
	MaxRetrievalDocs  int // K: upper bound on retrieved snippets per query
	EmbeddingDim      int

	// Email
	EmailEnabled     bool
	SendGridAPIKey   string
	FromEmail        string
	FromName         string

	// Batch processing
	BatchMode          string // "pool" or "async"
	BatchWorkers       int    // worker pool size above the sequential threshold
	BatchItemTimeout   int    // per-item timeout in seconds (batch mode only)
	AnalyticsCacheTTL  int    // analytics cache TTL in minutes
}

// Load initializes and returns application configuration
func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Version:     getEnv("VERSION", "1.0.0"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-ada-002"),
		Temperature:    getEnvFloat("LLM_TEMPERATURE", 0.3),

		QdrantHost:       getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:       getEnvInt("QDRANT_PORT", 6334),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "listings"),
		MaxRetrievalDocs: getEnvInt("MAX_RETRIEVAL_DOCS", 5),
		EmbeddingDim:     getEnvInt("EMBEDDING_DIM", 1536),

		EmailEnabled:   getEnvBool("EMAIL_ENABLED", true),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		FromEmail:      getEnv("FROM_EMAIL", "noreply@realassist.example.com"),
		FromName:       getEnv("FROM_NAME", "Real Estate Assistant"),

		BatchMode:         getEnv("BATCH_MODE", "pool"),
		BatchWorkers:      getEnvInt("BATCH_WORKERS", 5),
		BatchItemTimeout:  getEnvInt("BATCH_ITEM_TIMEOUT_SECONDS", 30),
		AnalyticsCacheTTL: getEnvInt("ANALYTICS_CACHE_TTL_MINUTES", 5),
	}

	return config
}

// Validate checks the configuration the pipeline cannot start without.
func (c *Config) Validate() error {
	var missing []string

	if c.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.EmailEnabled && c.SendGridAPIKey == "" {
		missing = append(missing, "SENDGRID_API_KEY")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.BatchMode != "pool" && c.BatchMode != "async" {
		return fmt.Errorf("invalid BATCH_MODE %q: must be \"pool\" or \"async\"", c.BatchMode)
	}

	return nil
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as integer with a default fallback
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets an environment variable as float with a default fallback
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as boolean with a default fallback
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// SetupLogger configures zerolog with JSON output and single-line format
func (c *Config) SetupLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "realassist").
		Str("version", c.Version).
		Logger()

	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	return logger
}
