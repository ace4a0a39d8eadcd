package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blogboard/internal/custom_errors"
	"blogboard/internal/model"
)

type entry struct {
	identity model.Identity
	expires  time.Time
}

// SessionStore is the in-memory session backend used in tests and by
// the CLI when no redis is around.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]entry)}
}

func (s *SessionStore) Put(ctx context.Context, token string, identity *model.Identity, ttl time.Duration) error {
	if identity == nil {
		return fmt.Errorf("identity cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	s.sessions[token] = entry{identity: *identity, expires: expires}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*model.Identity, error) {
	s.mu.RLock()
	e, exists := s.sessions[token]
	s.mu.RUnlock()

	if !exists {
		return nil, custom_errors.ErrSessionNotFound
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, custom_errors.ErrSessionNotFound
	}

	identity := e.identity
	return &identity, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
