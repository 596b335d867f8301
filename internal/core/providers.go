package core

import (
	"context"
	"time"
)

// AIProvider is a stateless chat completion: every call carries its full context.
type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
}

// WeatherProvider returns false when no reliable summary could be built.
type WeatherProvider interface {
	Summary(ctx context.Context, place, when string, year int) (WeatherSummary, bool)
}

// EventsProvider returns an empty slice when nothing was found or the provider is unavailable.
type EventsProvider interface {
	Events(ctx context.Context, place, when string, year int) []Event
}

type BudgetEstimator interface {
	Estimate(region string, days int, origin string, tier ComfortTier) BudgetEstimate
}

type Geocoder interface {
	Geocode(ctx context.Context, place string) (Place, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
