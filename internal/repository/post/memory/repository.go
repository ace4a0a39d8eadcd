package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"blogboard/internal/custom_errors"
	"blogboard/internal/logger"
	"blogboard/internal/model"
)

type PostRepository struct {
	log    *logger.Logger
	mu     sync.RWMutex
	posts  map[int64]*model.Post
	order  []int64
	nextID int64
}

func NewPostRepository(log *logger.Logger) *PostRepository {
	return &PostRepository{
		log:    log,
		posts:  make(map[int64]*model.Post),
		nextID: 1,
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	created := post.CreatedAt
	if !created.Valid {
		created = now
	}

	newPost := &model.Post{
		ID:        p.nextID,
		OwnerID:   post.OwnerID,
		Title:     post.Title,
		Excerpt:   post.Excerpt,
		Content:   post.Content,
		CreatedAt: created,
		UpdatedAt: now,
	}
	p.nextID++

	p.posts[newPost.ID] = newPost
	p.order = append(p.order, newPost.ID)

	result := *newPost
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	result := *post
	return &result, nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	if update.Title == nil && update.Excerpt == nil && update.Content == nil {
		return nil, custom_errors.ErrNoUpdateRows
	}

	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Excerpt != nil {
		post.Excerpt = update.Excerpt
	}
	if update.Content != nil {
		post.Content = *update.Content
	}

	post.UpdatedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	result := *post
	return &result, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.posts[id]; !exists {
		return custom_errors.ErrPostNotFound
	}

	delete(p.posts, id)
	for i, oid := range p.order {
		if oid == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return nil
}

func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var filteredPosts []*model.Post
	for _, id := range p.order {
		post := p.posts[id]
		if filters.OwnerID != nil && post.OwnerID != *filters.OwnerID {
			continue
		}
		if !matchesSearch(post, filters.Search) {
			continue
		}

		postCopy := *post
		filteredPosts = append(filteredPosts, &postCopy)
	}

	// Stable sort: posts sharing a created_at keep their insertion order.
	sort.SliceStable(filteredPosts, func(i, j int) bool {
		return filteredPosts[i].CreatedAt.Time.After(filteredPosts[j].CreatedAt.Time)
	})

	total := len(filteredPosts)

	if filters.Offset != nil {
		offset := *filters.Offset
		if offset >= len(filteredPosts) {
			return []*model.Post{}, total, nil
		}
		filteredPosts = filteredPosts[offset:]
	}

	if filters.Limit != nil {
		limit := *filters.Limit
		if limit < len(filteredPosts) {
			filteredPosts = filteredPosts[:limit]
		}
	}

	return filteredPosts, total, nil
}

func matchesSearch(post *model.Post, search *string) bool {
	if search == nil {
		return true
	}
	term := strings.ToLower(strings.TrimSpace(*search))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(post.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Content), term) {
		return true
	}
	if post.Excerpt != nil && strings.Contains(strings.ToLower(*post.Excerpt), term) {
		return true
	}
	return false
}
