// ABOUTME: Centralized configuration for the docs assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Index backend names accepted by ASKDOCS_INDEX.
const (
	IndexQdrant = "qdrant"
	IndexSQLite = "sqlite"
)

// Config holds all configuration for the assistant.
type Config struct {
	// OpenAI settings (Azure endpoint optional)
	OpenAIKey      string
	AzureEndpoint  string
	ChatModel      string
	EmbeddingModel string
	Temperature    float32
	MaxRetries     int
	RetryDelay     time.Duration
	RequestTimeout time.Duration

	// Vector index settings
	IndexBackend string
	IndexName    string
	Namespace    string
	Dimension    int
	QdrantAddr   string
	SQLitePath   string

	// Retrieval and generation settings
	TopK     int
	MaxChars int
	MaxTurns int

	// Document source
	DocumentsDir string

	// HTTP server
	ListenAddr string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		AzureEndpoint:  os.Getenv("AZURE_OPENAI_ENDPOINT"),
		ChatModel:      getEnv("ASKDOCS_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("ASKDOCS_EMBEDDING_MODEL", "text-embedding-3-small"),
		Temperature:    float32(getEnvFloat("ASKDOCS_TEMPERATURE", 0.7)),
		MaxRetries:     getEnvInt("ASKDOCS_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("ASKDOCS_RETRY_DELAY", 2*time.Second),
		RequestTimeout: getEnvDuration("ASKDOCS_REQUEST_TIMEOUT", 30*time.Second),

		IndexBackend: getEnv("ASKDOCS_INDEX", IndexQdrant),
		IndexName:    getEnv("ASKDOCS_INDEX_NAME", "acmecloud-docs"),
		Namespace:    getEnv("ASKDOCS_NAMESPACE", "acmecloud_documents"),
		Dimension:    getEnvInt("ASKDOCS_DIMENSION", 1536),
		QdrantAddr:   getEnv("QDRANT_ADDR", "localhost:6334"),
		SQLitePath:   getEnv("ASKDOCS_SQLITE_PATH", defaultSQLitePath()),

		TopK:     getEnvInt("ASKDOCS_TOP_K", 3),
		MaxChars: getEnvInt("ASKDOCS_MAX_CHARS", 1000),
		MaxTurns: getEnvInt("ASKDOCS_MAX_TURNS", 6),

		DocumentsDir: getEnv("ASKDOCS_DOCUMENTS_DIR", "documents"),
		ListenAddr:   getEnv("ASKDOCS_LISTEN_ADDR", ":8080"),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants the rest of the system relies on.
func (c *Config) Validate() error {
	if c.IndexBackend != IndexQdrant && c.IndexBackend != IndexSQLite {
		return fmt.Errorf("ASKDOCS_INDEX must be %q or %q, got %q", IndexQdrant, IndexSQLite, c.IndexBackend)
	}
	if c.Dimension <= 0 {
		return fmt.Errorf("ASKDOCS_DIMENSION must be positive, got %d", c.Dimension)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("ASKDOCS_TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxChars <= 0 {
		return fmt.Errorf("ASKDOCS_MAX_CHARS must be positive, got %d", c.MaxChars)
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("ASKDOCS_MAX_TURNS must be positive, got %d", c.MaxTurns)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("ASKDOCS_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("ASKDOCS_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	return nil
}

func defaultSQLitePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/askdocs/index.db"
		}
		dataHome = home + "/.local/share"
	}
	return dataHome + "/askdocs/index.db"
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
