package core

import "time"

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	GetTimeout() time.Duration
	GetAnthropicAPIKey() string
	GetOpenAIAPIKey() string
	GetOpenRouterAPIKey() string
	GetGeminiAPIKey() string
	GetOllamaBaseURL() string
	GetCustomBaseURL() string
	GetCustomAPIKey() string
}
