package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemorySessions is the single-process stand-in for RedisSessions, used when no
// Redis address is configured.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

type memorySession struct {
	userID  string
	expires time.Time
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]memorySession), now: time.Now}
}

func (m *MemorySessions) Open(_ context.Context, tokenID, userID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[tokenID]; ok && m.now().Before(s.expires) {
		return fmt.Errorf("session %s already exists", tokenID)
	}
	m.sessions[tokenID] = memorySession{userID: userID, expires: m.now().Add(ttl)}
	return nil
}

func (m *MemorySessions) Lookup(_ context.Context, tokenID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[tokenID]
	if !ok {
		return "", nil
	}
	if !m.now().Before(s.expires) {
		delete(m.sessions, tokenID)
		return "", nil
	}
	return s.userID, nil
}

func (m *MemorySessions) Close(_ context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tokenID)
	return nil
}
