package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
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

func echo(reply string) TurnFunc {
	return func(history []core.Message) (string, string, error) {
		return fmt.Sprintf("user %d", len(history)), reply, nil
	}
}

func TestSession_HistoryInvariant(t *testing.T) {
	created := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	s := New("seed", WithClock(func() time.Time { return created }))

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, created, s.CreatedAt())
	require.Equal(t, []core.Message{core.SystemMessage("seed")}, s.Snapshot())

	for n := 1; n <= 5; n++ {
		idx, err := s.RunTurn(echo(fmt.Sprintf("reply %d", n)))
		require.NoError(t, err)
		assert.Equal(t, n, idx)

		history := s.Snapshot()
		require.Len(t, history, 1+2*n)
		assert.Equal(t, core.UserMessage(fmt.Sprintf("user %d", 1+2*(n-1))), history[len(history)-2])
		assert.Equal(t, core.AssistantMessage(fmt.Sprintf("reply %d", n)), history[len(history)-1])
	}
	assert.Equal(t, 5, s.Turns())
	assert.Equal(t, 11, s.Len())
}

func TestSession_FailedTurnCommitsNothing(t *testing.T) {
	s := New("seed")
	boom := errors.New("model down")

	_, err := s.RunTurn(func([]core.Message) (string, string, error) {
		return "", "", boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Turns())
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := New("seed")
	_, err := s.RunTurn(func(history []core.Message) (string, string, error) {
		history[0].Content = "tampered"
		return "u", "a", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "seed", s.Snapshot()[0].Content)
}

func TestSession_MaxTurns(t *testing.T) {
	t.Run("evict oldest", func(t *testing.T) {
		s := New("seed", WithMaxTurns(2, true))
		for i := 1; i <= 4; i++ {
			_, err := s.RunTurn(func([]core.Message) (string, string, error) {
				return fmt.Sprintf("u%d", i), fmt.Sprintf("a%d", i), nil
			})
			require.NoError(t, err)
		}

		assert.Equal(t, []core.Message{
			core.SystemMessage("seed"),
			core.UserMessage("u3"),
			core.AssistantMessage("a3"),
			core.UserMessage("u4"),
			core.AssistantMessage("a4"),
		}, s.Snapshot())
		assert.Equal(t, 4, s.Turns())
	})

	t.Run("refuse", func(t *testing.T) {
		s := New("seed", WithMaxTurns(1, false))
		_, err := s.RunTurn(echo("a"))
		require.NoError(t, err)

		called := false
		_, err = s.RunTurn(func([]core.Message) (string, string, error) {
			called = true
			return "u", "a", nil
		})
		assert.ErrorIs(t, err, ErrTurnLimit)
		assert.False(t, called)
		assert.Equal(t, 3, s.Len())
	})
}

func TestSession_Close(t *testing.T) {
	s := New("seed")
	_, err := s.RunTurn(echo("a"))
	require.NoError(t, err)

	s.Close()
	assert.True(t, s.Closed())
	assert.Equal(t, 1, s.Len())

	_, err = s.RunTurn(echo("b"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSession_ConcurrentTurnsAreSerialized(t *testing.T) {
	s := New("seed")
	const workers = 8

	var mu sync.Mutex
	var seen []int
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.RunTurn(func(history []core.Message) (string, string, error) {
				mu.Lock()
				seen = append(seen, len(history))
				mu.Unlock()
				return "u", "a", nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	sort.Ints(seen)
	want := make([]int, workers)
	for i := range want {
		want[i] = 1 + 2*i
	}
	assert.Equal(t, want, seen)
	assert.Equal(t, 1+2*workers, s.Len())
}

func TestManager_Reset(t *testing.T) {
	m := NewManager("seed")
	first := m.Current()
	_, err := first.RunTurn(echo("a"))
	require.NoError(t, err)

	second := m.Reset()
	assert.True(t, first.Closed())
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Same(t, second, m.Current())
	assert.Equal(t, []core.Message{core.SystemMessage("seed")}, second.Snapshot())

	m.Close()
	assert.True(t, second.Closed())
}
