package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockagent/internal/adapters/config"
	"stockagent/pkg/errors"
)

func TestBuildRegistry_RequiresKey(t *testing.T) {
	_, err := BuildRegistry(config.ModelConfig{Provider: config.ProviderGroq}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingAPIKey))
}

func TestBuildRegistry_Groq(t *testing.T) {
	registry, err := BuildRegistry(config.ModelConfig{Provider: " Groq ", RequestsPerMinute: 30}, "key")
	require.NoError(t, err)

	assert.Equal(t, []string{"groq"}, registry.List())

	chat, err := registry.Chat("groq")
	require.NoError(t, err)
	assert.True(t, chat.SupportsTools())
}

func TestBuildRegistry_Gemini(t *testing.T) {
	registry, err := BuildRegistry(config.ModelConfig{Provider: config.ProviderGemini}, "key")
	require.NoError(t, err)

	_, err = registry.Chat("gemini")
	assert.True(t, errors.Is(err, errors.ErrNotImplemented))
}

func TestBuildRegistry_UnknownProvider(t *testing.T) {
	_, err := BuildRegistry(config.ModelConfig{Provider: "claude"}, "key")
	assert.True(t, errors.Is(err, errors.ErrUnavailable))
}
