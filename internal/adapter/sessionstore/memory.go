package sessionstore

import (
	"context"
	"sync"

	"github.com/the-chronicles/Creditflow/internal/domain/session"
)

// MemoryStore is a process-local Store for development and tests. No TTL:
// sessions live until cleared or the process exits.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]session.Session{}}
}

func (s *MemoryStore) Token(_ context.Context, sid string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sid].Token
}

func (s *MemoryStore) User(_ context.Context, sid string) (session.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return session.User{}, session.ErrNotFound
	}
	return sess.User, nil
}

func (s *MemoryStore) Set(_ context.Context, sid string, sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = sess
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
