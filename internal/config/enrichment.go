package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/tripsmith/pkg/log"
)

type EnrichmentConfig struct {
	TicketmasterAPIKey string `env:"TICKETMASTER_API_KEY"`
	MeteostatAPIKey    string `env:"METEOSTAT_API_KEY"`
	GoogleMapsAPIKey   string `env:"GOOGLE_MAPS_API_KEY"`

	HTTPTimeout time.Duration `env:"TRIP_HTTP_TIMEOUT" envDefault:"10s"`
	HTTPRetries int           `env:"TRIP_HTTP_RETRIES" envDefault:"2"`

	RedisAddr     string        `env:"TRIP_REDIS_ADDR"`
	RedisPassword string        `env:"TRIP_REDIS_PASSWORD"`
	RedisDB       int           `env:"TRIP_REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"TRIP_CACHE_TTL" envDefault:"24h"`
}

func LoadEnrichmentConfig(opts env.Options) (*EnrichmentConfig, error) {
	c := &EnrichmentConfig{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("parse enrichment config: %w", err)
	}
	if c.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("parse enrichment config: TRIP_HTTP_TIMEOUT must be positive")
	}
	return c, nil
}

func NewEnrichmentConfig(ctx context.Context) *EnrichmentConfig {
	c, err := LoadEnrichmentConfig(env.Options{})
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Enrichment config")
	}
	return c
}

func (c EnrichmentConfig) EventsEnabled() bool {
	return c.TicketmasterAPIKey != ""
}

func (c EnrichmentConfig) RedisEnabled() bool {
	return c.RedisAddr != ""
}
