package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sandevgo/tripsmith/pkg/log"
)

// Janitor purges expired entries of a Memory cache on an interval until its context ends.
type Janitor struct {
	cache    *Memory
	interval time.Duration
	started  atomic.Bool
	done     chan struct{}
}

func NewJanitor(cache *Memory, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Janitor{
		cache:    cache,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (j *Janitor) Start(ctx context.Context) error {
	j.started.Store(true)
	defer close(j.done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := j.cache.Purge(); n > 0 {
				log.FromCtx(ctx).Debug().Int("removed", n).Msg("cache: purged expired entries")
			}
		}
	}
}

// Shutdown waits for a running Start to return. The caller cancels the context passed to Start.
func (j *Janitor) Shutdown(ctx context.Context) error {
	if !j.started.Load() {
		return nil
	}
	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
