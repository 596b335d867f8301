package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(maxRetries int) *Config {
	return &Config{
		MaxRetries:    maxRetries,
		BackoffFactor: 2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Jitter:        time.Millisecond,
	}
}

func TestRetrier_Do(t *testing.T) {
	errTemporary := errors.New("temporary")
	errFatal := errors.New("fatal")

	tests := []struct {
		name         string
		maxRetries   int
		failures     int
		failWith     error
		wantErr      error
		wantAttempts int
	}{
		{name: "success on first try", maxRetries: 3, failures: 0, wantAttempts: 1},
		{name: "success after retries", maxRetries: 3, failures: 2, failWith: errTemporary, wantAttempts: 3},
		{name: "retries exhausted", maxRetries: 2, failures: 10, failWith: errTemporary, wantErr: errTemporary, wantAttempts: 3},
		{name: "zero retries", maxRetries: 0, failures: 10, failWith: errTemporary, wantErr: errTemporary, wantAttempts: 1},
		{name: "permanent stops early", maxRetries: 5, failures: 10, failWith: Permanent(errFatal), wantErr: errFatal, wantAttempts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := NewRetrier(fastConfig(tt.maxRetries)).Do(context.Background(), func() error {
				attempts++
				if attempts <= tt.failures {
					return tt.failWith
				}
				return nil
			})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantAttempts, attempts)
		})
	}
}

func TestRetrier_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	retrier := NewRetrier(&Config{MaxRetries: 3, BackoffFactor: 2, InitialDelay: time.Second, MaxDelay: time.Second})

	err := retrier.Do(ctx, func() error {
		cancel()
		return errors.New("operation error after cancel")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetrier_BackoffIsBounded(t *testing.T) {
	cfg := &Config{
		MaxRetries:    2,
		BackoffFactor: 2,
		InitialDelay:  10 * time.Millisecond,
		MaxDelay:      1 * time.Second,
	}

	start := time.Now()
	_ = NewRetrier(cfg).Do(context.Background(), func() error { return errors.New("error") })

	// two sleeps: 10ms then 20ms
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestPermanent(t *testing.T) {
	assert.Nil(t, Permanent(nil))

	base := errors.New("boom")
	err := Permanent(base)
	assert.True(t, IsPermanent(err))
	assert.False(t, IsPermanent(base))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "boom", err.Error())
}

func TestNewAdapterConfig(t *testing.T) {
	assert.Equal(t, 0, NewAdapterConfig(-1).MaxRetries)
	assert.Equal(t, 2, NewAdapterConfig(2).MaxRetries)
	assert.LessOrEqual(t, NewAdapterConfig(2).MaxDelay, 2*time.Second)
}
