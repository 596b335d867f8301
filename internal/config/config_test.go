package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opts(vars map[string]string) env.Options {
	return env.Options{Environment: vars}
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	c, err := LoadAppConfig(opts(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "Tel Aviv", c.HomeCity)
	assert.Equal(t, 0, c.MaxTurns)
	assert.True(t, c.EvictOldest)
	assert.False(t, c.JournalEnabled)
	assert.True(t, filepath.IsAbs(c.GetRuntimePath()))
	assert.Equal(t, ".tripsmith", filepath.Base(c.GetRuntimePath()))
	assert.Equal(t, filepath.Join(c.GetRuntimePath(), "journal.db"), c.GetDatabasePath())
	assert.Empty(t, c.GetPromptsPath())
}

func TestLoadAppConfig_Overrides(t *testing.T) {
	c, err := LoadAppConfig(opts(map[string]string{
		"TRIP_RUNTIME_PATH": "/tmp/trip",
		"TRIP_HOME_CITY":    "Haifa",
		"TRIP_MAX_TURNS":    "12",
		"TRIP_PROMPTS_FILE": "prompts.yaml",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/trip", c.GetRuntimePath())
	assert.Equal(t, "Haifa", c.HomeCity)
	assert.Equal(t, 12, c.MaxTurns)
	assert.Equal(t, "/tmp/trip/prompts.yaml", c.GetPromptsPath())
}

func TestLoadAppConfig_Invalid(t *testing.T) {
	_, err := LoadAppConfig(opts(map[string]string{"TRIP_MAX_TURNS": "-1"}))
	assert.Error(t, err)

	_, err = LoadAppConfig(opts(map[string]string{"TRIP_MAX_TURNS": "many"}))
	assert.Error(t, err)
}

func TestLoadProviderConfig(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantErr bool
	}{
		{name: "ollama defaults", vars: map[string]string{}},
		{name: "openai with key", vars: map[string]string{"TRIP_LLM_PROVIDER": "openai", "OPENAI_API_KEY": "sk"}},
		{name: "openai without key", vars: map[string]string{"TRIP_LLM_PROVIDER": "openai"}, wantErr: true},
		{name: "gemini without key", vars: map[string]string{"TRIP_LLM_PROVIDER": "gemini"}, wantErr: true},
		{name: "custom without url", vars: map[string]string{"TRIP_LLM_PROVIDER": "custom"}, wantErr: true},
		{name: "unknown provider", vars: map[string]string{"TRIP_LLM_PROVIDER": "pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadProviderConfig(opts(tt.vars))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, c.GetModel())
		})
	}
}

func TestLoadProviderConfig_Defaults(t *testing.T) {
	c, err := LoadProviderConfig(opts(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, ProviderOllama, c.GetProvider())
	assert.Equal(t, "llama3", c.GetModel())
	assert.Equal(t, 120*time.Second, c.GetTimeout())
	assert.Equal(t, "http://localhost:11434", c.GetOllamaBaseURL())
}

func TestLoadEnrichmentConfig(t *testing.T) {
	c, err := LoadEnrichmentConfig(opts(map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, c.HTTPTimeout)
	assert.Equal(t, 2, c.HTTPRetries)
	assert.Equal(t, 24*time.Hour, c.CacheTTL)
	assert.False(t, c.EventsEnabled())
	assert.False(t, c.RedisEnabled())

	c, err = LoadEnrichmentConfig(opts(map[string]string{
		"TICKETMASTER_API_KEY": "tm",
		"TRIP_REDIS_ADDR":      "localhost:6379",
	}))
	require.NoError(t, err)
	assert.True(t, c.EventsEnabled())
	assert.True(t, c.RedisEnabled())

	_, err = LoadEnrichmentConfig(opts(map[string]string{"TRIP_HTTP_TIMEOUT": "0s"}))
	assert.Error(t, err)
}
