// Package cache holds the stores used to memoize enrichment lookups.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/pkg/log"
)

// GetJSON decodes a cached value into dst. A miss or a corrupt entry both report false.
func GetJSON(ctx context.Context, c core.Cache, key string, dst any) bool {
	if c == nil {
		return false
	}
	raw, ok := c.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.FromCtx(ctx).Debug().Err(err).Str("key", key).Msg("dropping corrupt cache entry")
		return false
	}
	return true
}

// PutJSON stores v; failures are logged and otherwise ignored.
func PutJSON(ctx context.Context, c core.Cache, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.Set(ctx, key, raw, ttl); err != nil {
		log.FromCtx(ctx).Debug().Err(err).Str("key", key).Msg("cache write failed")
	}
}
