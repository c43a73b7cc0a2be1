package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/car-advisor/internal/advisor"
	"github.com/spigell/car-advisor/internal/ai"
	"github.com/spigell/car-advisor/internal/ai/gemini"
	"github.com/spigell/car-advisor/internal/catalog"
	"github.com/spigell/car-advisor/internal/logger"
	"github.com/spigell/car-advisor/internal/secrets"
)

const (
	providerGemini  = "gemini"
	providerOffline = "offline"
)

// environment holds what every command needs.
type environment struct {
	config  *Config
	logger  *zap.Logger
	advisor *advisor.Service
}

// bootstrap builds the logger, config, catalog and advisor. Setup errors are fatal.
func bootstrap(ctx context.Context) *environment {
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting", zap.String("app", app), zap.String("version", version))

	cars, err := loadCatalog(config.Catalog)
	if err != nil {
		logger.Fatal("loading the catalog", zap.Error(err))
	}

	logger.Debug("catalog loaded", zap.Int("vehicles", cars.Len()), zap.String("file", config.Catalog.File))

	summarizer, provider, model, err := newSummarizer(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating a summarizer", zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or GEMINI_API_KEY_FILE, or disable ai.enabled"),
		)
	}

	return &environment{
		config:  config,
		logger:  logger,
		advisor: advisor.New(cars, summarizer, logger, advisor.WithAIConfig(provider, model)),
	}
}

func loadCatalog(cfg *CatalogConfig) (*catalog.Catalog, error) {
	if cfg == nil || strings.TrimSpace(cfg.File) == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.File)
}

// newSummarizer returns the configured summarizer with its provider and model names.
func newSummarizer(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Summarizer, string, string, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Debug("ai is disabled, using offline summaries")
		return ai.NewOffline(), providerOffline, "", nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case providerOffline:
		return ai.NewOffline(), providerOffline, "", nil
	case "", providerGemini:
	default:
		return nil, "", "", fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, "", "", errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Value: cfg.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, "", "", err
	}

	genLogger := logger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, cfg.Gemini.RequestsPerMinute, genLogger)
	if err != nil {
		return nil, "", "", err
	}

	return gemini.NewSummarizer(generator, cfg.Gemini.MaxLogLength, logger), providerGemini, generator.Model(), nil
}

func newLogger() (*zap.Logger, error) {
	return logger.New(viper.GetBool("json"), viper.GetBool("debug"))
}
