package ai

import "context"

// ProviderName identifies a model backend.
type ProviderName string

const (
	ProviderNameGroq   ProviderName = "groq"
	ProviderNameGoogle ProviderName = "gemini"
)

func (p ProviderName) String() string { return string(p) }

// Model identifiers known to the catalogs. Others are passed through unchecked.
const (
	ModelLlama33Versatile = "llama-3.3-70b-versatile"
	ModelLlama31Instant   = "llama-3.1-8b-instant"
	ModelGemini25Flash    = "gemini-2.5-flash"
	ModelGemini25Pro      = "gemini-2.5-pro"
)

// Provider exposes a backend's model catalog.
type Provider interface {
	Name() string
	GetModel(ctx context.Context, model string) (ModelInfo, error)
	ListModels(ctx context.Context) ([]ModelInfo, error)
	SupportsTools() bool
}

// ChatProvider is a Provider that can run chat completions with tool calls.
// Providers whose calls go through the framework directly (Gemini) only implement Provider.
type ChatProvider interface {
	Provider
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ModelInfo is one catalog entry.
type ModelInfo struct {
	Provider      ProviderName
	Name          string
	Family        string
	MaxTokens     int // context window
	SupportsTools bool
}
