// Package session owns the conversation history of one chat from its seed to its close.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/tripsmith/internal/core"
)

var (
	ErrTurnLimit = errors.New("session: turn limit reached")
	ErrClosed    = errors.New("session: closed")
)

type Option func(*Session)

// WithMaxTurns bounds the exchanges kept in history. With evict the oldest exchange is
// dropped to make room; without it further turns fail with ErrTurnLimit. Zero means unbounded.
func WithMaxTurns(n int, evict bool) Option {
	return func(s *Session) {
		if n < 0 {
			n = 0
		}
		s.maxTurns = n
		s.evictOldest = evict
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

type Session struct {
	id        string
	createdAt time.Time
	now       func() time.Time

	maxTurns    int
	evictOldest bool

	// turnMu serializes whole turns; mu guards the fields below it.
	turnMu sync.Mutex
	mu     sync.RWMutex
	// history[0] is the seed and is never evicted.
	history   []core.Message
	completed int
	closed    bool
}

func New(seed string, opts ...Option) *Session {
	s := &Session{
		id:  uuid.NewString(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.createdAt = s.now()
	s.history = []core.Message{core.SystemMessage(seed)}
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Snapshot returns a copy of the history.
func (s *Session) Snapshot() []core.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Message(nil), s.history...)
}

// Len is the number of messages in the history, seed included.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// Turns counts completed turns, including ones since evicted.
func (s *Session) Turns() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed
}

func (s *Session) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// TurnFunc receives the history as it stood before the turn and returns the exchange to commit.
type TurnFunc func(history []core.Message) (userText, reply string, err error)

// RunTurn runs fn with turns on this session serialized, then appends the user text and the
// reply in that order. Nothing is appended when fn fails. The returned index is 1-based.
func (s *Session) RunTurn(fn TurnFunc) (int, error) {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()

	if err := s.admit(); err != nil {
		return 0, err
	}

	userText, reply, err := fn(s.Snapshot())
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	if s.maxTurns > 0 && s.held() >= s.maxTurns {
		s.evict()
	}
	s.history = append(s.history, core.UserMessage(userText), core.AssistantMessage(reply))
	s.completed++
	return s.completed, nil
}

func (s *Session) admit() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	if s.maxTurns > 0 && !s.evictOldest && s.held() >= s.maxTurns {
		return ErrTurnLimit
	}
	return nil
}

// held is the number of exchanges currently in history. Callers hold mu.
func (s *Session) held() int {
	return (len(s.history) - 1) / 2
}

// evict drops the oldest user/assistant pair after the seed. Callers hold mu.
func (s *Session) evict() {
	if len(s.history) < 3 {
		return
	}
	s.history = append(s.history[:1], s.history[3:]...)
}

// Close releases the history. Further turns fail with ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.history = s.history[:1]
}
