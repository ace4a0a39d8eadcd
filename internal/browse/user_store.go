package browse

import (
	"sync"

	"blogboard/internal/model"
)

// UserStore holds the current authenticated identity. Authentication
// state changes are replace-or-clear; there is no partial update.
type UserStore struct {
	mu       sync.RWMutex
	identity model.Identity
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) SetUser(identity model.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity.LoggedIn = true
	s.identity = identity
}

func (s *UserStore) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = model.Identity{}
}

func (s *UserStore) Current() model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// CanModify reports whether the stored identity may edit or delete the
// given post. This is a UX affordance; the server enforces ownership
// authoritatively.
func (s *UserStore) CanModify(post *model.Post) bool {
	if post == nil {
		return false
	}
	current := s.Current()
	return current.LoggedIn && current.ID == post.OwnerID
}
