package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"

	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

const defaultGenerationTimeout = 60 * time.Second

// Config holds the configuration for the application.
type Config struct {
	AIProvider string

	GeminiAPIKey string
	GeminiModel  string

	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterReferer string
	OpenRouterURL     string

	// Storage
	StorageDriver string
	DataDir       string
	DatabasePath  string
	RedisURL      string

	GenerationTimeout time.Duration
}

// Load reads an optional .env file and then builds the Config from the
// process environment. Variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return NewFromEnv()
}

// NewFromEnv creates a new Config object from environment variables.
// API keys are optional here; a missing key fails the first generation
// instead, before any request goes out.
func NewFromEnv() (*Config, error) {
	provider := strings.ToLower(os.Getenv("AI_PROVIDER"))
	if provider == "" {
		provider = ProviderGemini
	}
	if provider != ProviderGemini && provider != ProviderOpenRouter {
		return nil, fmt.Errorf("AI_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenRouter, provider)
	}

	driver := strings.ToLower(os.Getenv("STORAGE_DRIVER"))
	if driver == "" {
		driver = StorageFile
	}
	switch driver {
	case StorageFile, StorageSQLite, StorageRedis:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be one of file, sqlite, redis, got %q", driver)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "ai-trainer.db")
	}

	redisURL := os.Getenv("REDIS_URL")
	if driver == StorageRedis && redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable not set")
	}

	timeout := defaultGenerationTimeout
	if raw := os.Getenv("GENERATION_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid GENERATION_TIMEOUT %q: %w", raw, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("GENERATION_TIMEOUT must be positive, got %s", d)
		}
		timeout = d
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-2.0-flash"
	}

	openRouterModel := os.Getenv("OPENROUTER_MODEL")
	if openRouterModel == "" {
		openRouterModel = "google/gemini-2.0-flash-exp:free"
	}

	return &Config{
		AIProvider:        provider,
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       geminiModel,
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:   openRouterModel,
		OpenRouterReferer: os.Getenv("OPENROUTER_REFERER"),
		OpenRouterURL:     os.Getenv("OPENROUTER_URL"),
		StorageDriver:     driver,
		DataDir:           dataDir,
		DatabasePath:      dbPath,
		RedisURL:          redisURL,
		GenerationTimeout: timeout,
	}, nil
}
