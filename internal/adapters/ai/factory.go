package ai

import (
	"strings"

	"stockagent/internal/adapters/config"
	"stockagent/pkg/errors"
)

// BuildRegistry registers the provider selected by cfg. apiKey is the resolved
// inference key (see config.ModelConfig.InferenceKey).
func BuildRegistry(cfg config.ModelConfig, apiKey string) (*Registry, error) {
	if apiKey == "" {
		return nil, errors.ErrMissingAPIKey
	}

	registry := NewRegistry()

	switch ProviderName(NormalizeProviderName(cfg.Provider)) {
	case ProviderNameGroq:
		provider, err := NewGroqProvider(GroqOptions{
			APIKey:  apiKey,
			BaseURL: cfg.GroqBaseURL,
			Timeout: cfg.Timeout,
			Limiter: NewRateLimiter(ProviderNameGroq, cfg.RequestsPerMinute),
		})
		if err != nil {
			return nil, err
		}
		if err := registry.Register(provider); err != nil {
			return nil, err
		}
	case ProviderNameGoogle:
		if err := registry.Register(NewGeminiProvider()); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(errors.ErrUnavailable, "unsupported model provider %q", cfg.Provider)
	}

	return registry, nil
}

// NormalizeProviderName makes provider lookup more forgiving.
func NormalizeProviderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
