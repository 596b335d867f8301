package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/tripsmith/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"TRIP_RUNTIME_PATH" envDefault:".tripsmith"`
	HomeCity    string `env:"TRIP_HOME_CITY" envDefault:"Tel Aviv"`

	// Session bound. Zero keeps the whole conversation.
	MaxTurns    int  `env:"TRIP_MAX_TURNS" envDefault:"0"`
	EvictOldest bool `env:"TRIP_EVICT_OLDEST" envDefault:"true"`

	JournalEnabled bool   `env:"TRIP_JOURNAL_ENABLED" envDefault:"false"`
	PromptsFile    string `env:"TRIP_PROMPTS_FILE"`
}

func LoadAppConfig(opts env.Options) (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("parse app config: %w", err)
	}
	if c.MaxTurns < 0 {
		return nil, fmt.Errorf("parse app config: TRIP_MAX_TURNS must not be negative, got %d", c.MaxTurns)
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := LoadAppConfig(env.Options{})
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "journal.db")
}

func (c AppConfig) GetHistoryFilePath() string {
	return filepath.Join(c.RuntimePath, "repl_history")
}

func (c AppConfig) GetEnvFilePath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

// GetPromptsPath returns the override catalog, or empty when the embedded one should be used.
func (c AppConfig) GetPromptsPath() string {
	if c.PromptsFile == "" {
		return ""
	}
	if filepath.IsAbs(c.PromptsFile) {
		return c.PromptsFile
	}
	return filepath.Join(c.RuntimePath, c.PromptsFile)
}
