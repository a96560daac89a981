package adk

import (
	"context"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"

	"stockagent/internal/adapters/ai"
	"stockagent/internal/adapters/config"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

// NewModel builds the shared model handle for the configured provider.
// An unknown model id is passed through to the provider with a warning.
func NewModel(ctx context.Context, cfg config.ModelConfig, rt config.Runtime) (model.LLM, error) {
	if rt.APIKey == "" {
		return nil, errors.ErrMissingAPIKey
	}
	if rt.ModelID == "" {
		return nil, errors.NewValidationError("model_id", "is required", rt.ModelID)
	}

	log := logger.Get().With("component", "model", "provider", cfg.Provider, "model", rt.ModelID)

	registry, err := ai.BuildRegistry(cfg, rt.APIKey)
	if err != nil {
		return nil, err
	}

	if _, err := registry.ResolveModel(ctx, cfg.Provider, rt.ModelID); err != nil {
		log.Warnw("Model not in provider catalog, using as-is", "error", err)
	}

	switch ai.ProviderName(ai.NormalizeProviderName(cfg.Provider)) {
	case ai.ProviderNameGoogle:
		llm, err := gemini.NewModel(ctx, rt.ModelID, &genai.ClientConfig{APIKey: rt.APIKey})
		if err != nil {
			return nil, errors.Wrap(err, "create gemini model")
		}
		log.Infow("Model ready")
		return llm, nil
	default:
		chat, err := registry.Chat(cfg.Provider)
		if err != nil {
			return nil, err
		}
		log.Infow("Model ready")
		return NewModelAdapter(chat, rt.ModelID, AdapterOptions{
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}), nil
	}
}
