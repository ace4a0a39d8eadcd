package browse

import (
	"sync"

	"blogboard/internal/model"
)

// BlogStore holds the currently loaded page of posts. It mirrors server
// state and is only ever mutated through ReplaceAll, Append and Remove;
// callers get copies of the slice, never the backing array.
type BlogStore struct {
	mu    sync.RWMutex
	posts []*model.PostDetailed
}

func NewBlogStore() *BlogStore {
	return &BlogStore{}
}

// ReplaceAll installs the result of a fresh fetch. It is page-scoped:
// prior contents are fully superseded, nothing accumulates across pages.
func (s *BlogStore) ReplaceAll(posts []*model.PostDetailed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = make([]*model.PostDetailed, len(posts))
	copy(s.posts, posts)
}

func (s *BlogStore) Append(post *model.PostDetailed) {
	if post == nil || post.Post == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, post)
}

func (s *BlogStore) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.posts[:0]
	for _, p := range s.posts {
		if p.Post.ID != id {
			filtered = append(filtered, p)
		}
	}
	s.posts = filtered
}

func (s *BlogStore) Posts() []*model.PostDetailed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.PostDetailed, len(s.posts))
	copy(result, s.posts)
	return result
}

func (s *BlogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// Get returns the stored post with the given id, or nil.
func (s *BlogStore) Get(id int64) *model.PostDetailed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.Post.ID == id {
			return p
		}
	}
	return nil
}
