package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"ai-trainer/internal/config"
	"ai-trainer/internal/database"
	"ai-trainer/internal/inquiry"
	"ai-trainer/internal/llm"
	"ai-trainer/internal/metrics"
	"ai-trainer/internal/planner"
	"ai-trainer/internal/storage"
)

const redisKeyPrefix = "ai-trainer:"

// Open builds the App from configuration. A missing API key is not fatal
// here: reading or clearing the saved plan still works and generation
// fails fast with llm.ErrMissingAPIKey.
func Open(ctx context.Context, cfg *config.Config, out io.Writer) (*App, error) {
	var closers []func() error
	fail := func(err error) (*App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		return nil, err
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize database: %w", err))
	}
	closers = append(closers, db.Close)

	store, closeStore, err := NewStore(ctx, cfg, db)
	if err != nil {
		return fail(err)
	}
	if closeStore != nil {
		closers = append(closers, closeStore)
	}

	textGen, err := NewTextGenerator(ctx, cfg)
	if err != nil {
		return fail(err)
	}
	if c, ok := textGen.(llm.Closer); ok {
		closers = append(closers, c.Close)
	}

	metricsStore := metrics.NewStore(db.SQL)
	session := planner.NewSession(
		planner.NewPlanner(textGen),
		planner.NewPlanCache(store, planner.DefaultPlanKey),
		planner.WithTimeout(cfg.GenerationTimeout),
		planner.WithRecorder(metricsStore),
	)

	a := NewApp(cfg, session, inquiry.NewLog(store, inquiry.DefaultKey), metricsStore, out)
	a.closers = closers
	return a, nil
}

// NewTextGenerator returns the client for the configured provider, or nil
// when its API key is not set.
func NewTextGenerator(ctx context.Context, cfg *config.Config) (llm.TextGenerator, error) {
	switch cfg.AIProvider {
	case config.ProviderOpenRouter:
		opts := []llm.OpenRouterOption{llm.WithReferer(cfg.OpenRouterReferer)}
		if cfg.OpenRouterURL != "" {
			opts = append(opts, llm.WithOpenRouterURL(cfg.OpenRouterURL))
		}
		client, err := llm.NewOpenRouterClient(cfg.OpenRouterAPIKey, planner.GenerationConfig(cfg.OpenRouterModel), opts...)
		if errors.Is(err, llm.ErrMissingAPIKey) {
			log.Printf("Warning: %v; plan generation is disabled", err)
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenRouter client: %w", err)
		}
		return client, nil
	default:
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, planner.GenerationConfig(cfg.GeminiModel))
		if errors.Is(err, llm.ErrMissingAPIKey) {
			log.Printf("Warning: %v; plan generation is disabled", err)
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		return client, nil
	}
}

// NewStore returns the key/value backend selected by STORAGE_DRIVER and an
// optional closer for it.
func NewStore(ctx context.Context, cfg *config.Config, db *database.DB) (storage.Store, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		return storage.NewSQLiteStore(db.SQL), nil, nil
	case config.StorageRedis:
		client, err := storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		store := storage.NewRedisStore(client, redisKeyPrefix)
		return store, store.Close, nil
	default:
		store, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}
}
