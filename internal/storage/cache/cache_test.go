package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	value := []byte("lisbon")
	require.NoError(t, c.Set(ctx, "k", value, time.Minute))
	value[0] = 'X'

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "lisbon", string(got))
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", []byte("a"), time.Second))
	require.NoError(t, c.Set(ctx, "forever", []byte("b"), 0))
	assert.Equal(t, 2, c.Len())

	now = now.Add(2 * time.Second)

	_, ok := c.Get(ctx, "short")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	in := core.Place{Name: "Lisbon", Lat: 38.72, Lon: -9.14}
	PutJSON(ctx, c, "geo:lisbon", in, time.Hour)

	var out core.Place
	require.True(t, GetJSON(ctx, c, "geo:lisbon", &out))
	assert.Equal(t, in, out)

	require.NoError(t, c.Set(ctx, "bad", []byte("{"), time.Hour))
	assert.False(t, GetJSON(ctx, c, "bad", &out))

	assert.False(t, GetJSON(ctx, nil, "geo:lisbon", &out))
	PutJSON(ctx, nil, "x", in, time.Hour)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("TRIP_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRIP_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	r := NewRedis(RedisOptions{Addr: addr})
	defer r.Close()

	require.NoError(t, r.Ping(ctx))
	require.NoError(t, r.Set(ctx, "test:key", []byte("v"), time.Minute))

	got, ok := r.Get(ctx, "test:key")
	require.True(t, ok)
	assert.Equal(t, "v", string(got))

	_, ok = r.Get(ctx, "test:missing")
	assert.False(t, ok)
}

func TestMemory_Purge(t *testing.T) {
	now := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "short", []byte("a"), time.Minute))
	require.NoError(t, m.Set(ctx, "long", []byte("b"), time.Hour))
	require.NoError(t, m.Set(ctx, "forever", []byte("c"), 0))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, m.Purge())
	assert.Equal(t, 2, m.Len())
}

func TestJanitor(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set(context.Background(), "k", []byte("v"), time.Millisecond))

	j := NewJanitor(m, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = j.Start(ctx) }()

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), time.Second)
	defer stop()
	require.NoError(t, j.Shutdown(shutdownCtx))
}
