package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"stockagent/pkg/errors"
)

type Config struct {
	App           AppConfig
	Secrets       SecretsConfig
	Model         ModelConfig
	Agents        AgentsConfig
	Tools         ToolsConfig
	Metrics       MetricsConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"stockagent"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"APP_VERSION" default:"dev"`
}

// SecretsConfig holds credentials. PHI_API_KEY is checked explicitly in Load so a
// missing value surfaces as errors.ErrMissingAPIKey instead of an envconfig message.
type SecretsConfig struct {
	APIKey string `envconfig:"PHI_API_KEY"`
}

type ModelConfig struct {
	Provider string `envconfig:"MODEL_PROVIDER" default:"groq"`
	// ID overrides model_id from the agents file when set
	ID                string        `envconfig:"MODEL_ID"`
	GroqAPIKey        string        `envconfig:"GROQ_API_KEY"`
	GroqBaseURL       string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1/"`
	GeminiAPIKey      string        `envconfig:"GEMINI_API_KEY"`
	Timeout           time.Duration `envconfig:"MODEL_TIMEOUT" default:"60s"`
	MaxTokens         int           `envconfig:"MODEL_MAX_TOKENS" default:"4096"`
	Temperature       float64       `envconfig:"MODEL_TEMPERATURE" default:"0.7"`
	RequestsPerMinute int           `envconfig:"MODEL_REQUESTS_PER_MINUTE" default:"30"`
}

type AgentsConfig struct {
	ConfigPath string `envconfig:"AGENTS_CONFIG_PATH" default:"config.json"`
	// QueryTimeout bounds one one-shot query including every tool call
	QueryTimeout time.Duration `envconfig:"QUERY_TIMEOUT" default:"5m"`
}

type ToolsConfig struct {
	SearchBaseURL     string        `envconfig:"SEARCH_BASE_URL" default:"https://html.duckduckgo.com"`
	FinanceBaseURL    string        `envconfig:"FINANCE_BASE_URL" default:"https://query1.finance.yahoo.com"`
	FinanceCookieURL  string        `envconfig:"FINANCE_COOKIE_URL" default:"https://fc.yahoo.com"`
	Timeout           time.Duration `envconfig:"TOOLS_TIMEOUT" default:"20s"`
	RequestsPerMinute int           `envconfig:"TOOLS_REQUESTS_PER_MINUTE" default:"60"`
	UserAgent         string        `envconfig:"TOOLS_USER_AGENT" default:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`
	SearchMaxResults  int           `envconfig:"SEARCH_MAX_RESULTS" default:"5"`
}

type MetricsConfig struct {
	// Addr enables the /metrics listener when non-empty, e.g. ":9090"
	Addr string `envconfig:"METRICS_ADDR"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Runtime is the resolved secret and model identifier handed to constructors.
type Runtime struct {
	APIKey  string
	ModelID string
}

// Load reads configuration from environment variables.
// It first tries to load .env file (useful for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Secrets.APIKey) == "" {
		return errors.ErrMissingAPIKey
	}

	switch c.Model.Provider {
	case ProviderGroq, ProviderGemini:
	default:
		return errors.NewValidationError("MODEL_PROVIDER", "unsupported provider", c.Model.Provider)
	}

	return nil
}

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// InferenceKey returns the key for the configured model provider, falling
// back to the platform secret when no provider-specific key is set.
func (c ModelConfig) InferenceKey(secret string) string {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey != "" {
			return c.GeminiAPIKey
		}
	default:
		if c.GroqAPIKey != "" {
			return c.GroqAPIKey
		}
	}
	return secret
}

// Runtime resolves the runtime environment for the given agents-file model id.
func (c *Config) Runtime(fileModelID string) Runtime {
	modelID := fileModelID
	if c.Model.ID != "" {
		modelID = c.Model.ID
	}
	return Runtime{
		APIKey:  c.Model.InferenceKey(c.Secrets.APIKey),
		ModelID: modelID,
	}
}
