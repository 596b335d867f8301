package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/tripsmith/pkg/log"
)

const (
	ProviderOllama     = "ollama"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderCustom     = "custom"
)

var Providers = []string{
	ProviderOllama,
	ProviderOpenAI,
	ProviderOpenRouter,
	ProviderAnthropic,
	ProviderGemini,
	ProviderCustom,
}

type ProviderConfig struct {
	Provider string        `env:"TRIP_LLM_PROVIDER" envDefault:"ollama"`
	Model    string        `env:"TRIP_LLM_MODEL" envDefault:"llama3"`
	Timeout  time.Duration `env:"TRIP_LLM_TIMEOUT" envDefault:"120s"`

	OllamaBaseURL    string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`

	CustomBaseURL string `env:"TRIP_CUSTOM_BASE_URL"`
	CustomAPIKey  string `env:"TRIP_CUSTOM_API_KEY"`
}

func LoadProviderConfig(opts env.Options) (*ProviderConfig, error) {
	c := &ProviderConfig{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("parse provider config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c, err := LoadProviderConfig(env.Options{})
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	return c
}

func (c *ProviderConfig) validate() error {
	missing := func(name string) error {
		return fmt.Errorf("provider %q requires %s", c.Provider, name)
	}

	switch c.Provider {
	case ProviderOllama:
		if c.OllamaBaseURL == "" {
			return missing("OLLAMA_BASE_URL")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return missing("OPENAI_API_KEY")
		}
	case ProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			return missing("OPENROUTER_API_KEY")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return missing("ANTHROPIC_API_KEY")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return missing("GEMINI_API_KEY")
		}
	case ProviderCustom:
		if c.CustomBaseURL == "" {
			return missing("TRIP_CUSTOM_BASE_URL")
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("TRIP_LLM_MODEL must not be empty")
	}
	return nil
}

func (c *ProviderConfig) GetProvider() string { return c.Provider }
func (c *ProviderConfig) GetModel() string { return c.Model }
func (c *ProviderConfig) GetTimeout() time.Duration { return c.Timeout }
func (c *ProviderConfig) GetAnthropicAPIKey() string { return c.AnthropicAPIKey }
func (c *ProviderConfig) GetOpenAIAPIKey() string { return c.OpenAIAPIKey }
func (c *ProviderConfig) GetOpenRouterAPIKey() string { return c.OpenRouterAPIKey }
func (c *ProviderConfig) GetGeminiAPIKey() string { return c.GeminiAPIKey }
func (c *ProviderConfig) GetOllamaBaseURL() string { return c.OllamaBaseURL }
func (c *ProviderConfig) GetCustomBaseURL() string { return c.CustomBaseURL }
func (c *ProviderConfig) GetCustomAPIKey() string { return c.CustomAPIKey }
