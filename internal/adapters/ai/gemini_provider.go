package ai

import (
	"context"
	"strings"

	"stockagent/pkg/errors"
)

// GeminiProvider exposes Gemini model metadata. Gemini requests themselves go
// through the adk gemini model, so this provider does not implement Chat.
type GeminiProvider struct {
	models []ModelInfo
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider() *GeminiProvider {
	return &GeminiProvider{models: geminiModels()}
}

func (p *GeminiProvider) Name() string { return ProviderNameGoogle.String() }

// GetModel returns model info by name.
func (p *GeminiProvider) GetModel(_ context.Context, model string) (ModelInfo, error) {
	for _, m := range p.models {
		if strings.EqualFold(m.Name, model) {
			return m, nil
		}
	}
	return ModelInfo{}, errors.Wrapf(errors.ErrNotFound, "gemini model %s not found", model)
}

func (p *GeminiProvider) ListModels(_ context.Context) ([]ModelInfo, error) {
	return p.models, nil
}

func (p *GeminiProvider) SupportsTools() bool { return true }

func geminiModels() []ModelInfo {
	return []ModelInfo{
		{
			Provider:      ProviderNameGoogle,
			Name:          ModelGemini25Flash,
			Family:        "gemini-2.5",
			MaxTokens:     1048576,
			SupportsTools: true,
		},
		{
			Provider:      ProviderNameGoogle,
			Name:          ModelGemini25Pro,
			Family:        "gemini-2.5",
			MaxTokens:     1048576,
			SupportsTools: true,
		},
	}
}
