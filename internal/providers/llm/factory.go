package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/tripsmith/internal/config"
	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/pkg/log"
)

// NewProvider creates the AIProvider selected by configuration.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	timeout := cfg.GetTimeout()

	switch cfg.GetProvider() {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.GetOpenAIAPIKey(), cfg.GetModel(), timeout), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg.GetAnthropicAPIKey(), cfg.GetModel(), timeout), nil
	case config.ProviderOpenRouter:
		return NewOpenRouter(cfg.GetOpenRouterAPIKey(), cfg.GetModel(), timeout), nil
	case config.ProviderOllama:
		return NewOllama(cfg.GetOllamaBaseURL(), cfg.GetModel(), timeout), nil
	case config.ProviderGemini:
		return NewGemini(cfg.GetGeminiAPIKey(), cfg.GetModel(), timeout), nil
	case config.ProviderCustom:
		return NewCustomOpenAI(cfg.GetCustomBaseURL(), cfg.GetCustomAPIKey(), cfg.GetModel(), timeout), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.GetProvider())
	}
}
