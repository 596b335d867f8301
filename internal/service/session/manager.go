package session

import (
	"sync"
)

// Manager hands out the current session of a single user chat and replaces it on reset.
type Manager struct {
	seed string
	opts []Option

	mu      sync.Mutex
	current *Session
}

func NewManager(seed string, opts ...Option) *Manager {
	return &Manager{
		seed:    seed,
		opts:    opts,
		current: New(seed, opts...),
	}
}

func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Reset closes the current session and starts a fresh one from the seed.
func (m *Manager) Reset() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.Close()
	m.current = New(m.seed, m.opts...)
	return m.current
}

func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.Close()
}
