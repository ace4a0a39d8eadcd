package post_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"blogboard/internal/custom_errors"
	"blogboard/internal/infrastructure/metrics"
	"blogboard/internal/logger"
	"blogboard/internal/model"
	post_repository "blogboard/internal/repository/post"
	profile_repository "blogboard/internal/repository/profile"
)

type PostService struct {
	postRepo    post_repository.Repository
	profileRepo profile_repository.Repository
	log         *logger.Logger
	metrics     metrics.Provider
}

func NewPostService(
	postRepo post_repository.Repository,
	profileRepo profile_repository.Repository,
	log *logger.Logger,
	metrics metrics.Provider,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		log:         log,
		metrics:     metrics,
	}
}

// CreatePost validates the draft before any repository call; an empty
// title or content never reaches storage.
func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error) {
	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Content) == "" {
		s.log.Debug("Rejected post draft with missing required fields",
			slog.Int64("owner_id", post.OwnerID))
		s.metrics.IncrementPostOperations("create", false)
		return nil, custom_errors.ErrPostValidation
	}
	if post.OwnerID <= 0 {
		s.metrics.IncrementPostOperations("create", false)
		return nil, custom_errors.ErrInvalidInput
	}

	newPost := &model.Post{
		OwnerID: post.OwnerID,
		Title:   post.Title,
		Excerpt: post.Excerpt,
		Content: post.Content,
	}

	createdPost, err := s.postRepo.Create(ctx, newPost)
	if err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("create", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementPostOperations("create", true)
	return &model.PostDetailed{
		Post:   createdPost,
		Author: s.lookupAuthor(ctx, createdPost.OwnerID),
	}, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		s.metrics.IncrementPostOperations("get_by_id", false)
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			s.log.Debug("Post not found", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		default:
			s.log.Error("Failed to get post by id",
				slog.String("error", err.Error()),
				slog.Int64("id", id))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	s.metrics.IncrementPostOperations("get_by_id", true)
	return &model.PostDetailed{
		Post:   post,
		Author: s.lookupAuthor(ctx, post.OwnerID),
	}, nil
}

func (s *PostService) ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.PostDetailed, int, error) {
	posts, total, err := s.postRepo.List(ctx, *filters)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("list", false)
		return nil, 0, custom_errors.ErrDatabaseQuery
	}

	result := make([]*model.PostDetailed, 0, len(posts))
	for _, post := range posts {
		result = append(result, &model.PostDetailed{
			Post:   post,
			Author: s.lookupAuthor(ctx, post.OwnerID),
		})
	}
	s.metrics.IncrementPostOperations("list", true)
	return result, total, nil
}

func (s *PostService) UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) (*model.Post, error) {
	if post.Title != nil && strings.TrimSpace(*post.Title) == "" {
		s.metrics.IncrementPostOperations("update", false)
		return nil, custom_errors.ErrPostValidation
	}
	if post.Content != nil && strings.TrimSpace(*post.Content) == "" {
		s.metrics.IncrementPostOperations("update", false)
		return nil, custom_errors.ErrPostValidation
	}

	existingPost, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		s.metrics.IncrementPostOperations("update", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for update", slog.String("error", err.Error()), slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if existingPost.OwnerID != userID {
		s.log.Debug("User is not owner of post",
			slog.Int64("user_id", userID),
			slog.Int64("owner_id", existingPost.OwnerID))
		s.metrics.IncrementPostOperations("update", false)
		return nil, custom_errors.ErrForbidden
	}

	updated, err := s.postRepo.Update(ctx, id, post)
	if err != nil {
		s.metrics.IncrementPostOperations("update", false)
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			s.log.Debug("Post not found for update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		case errors.Is(err, custom_errors.ErrNoUpdateRows):
			return nil, custom_errors.ErrNoUpdateRows
		default:
			s.log.Error("Failed to update post", slog.String("error", err.Error()), slog.Int64("id", id))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	s.metrics.IncrementPostOperations("update", true)
	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID int64, id int64) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		s.metrics.IncrementPostOperations("delete", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found when deleting post", slog.Int64("id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post", slog.String("error", err.Error()), slog.Int64("id", id))
		return custom_errors.ErrDatabaseQuery
	}
	if post.OwnerID != userID {
		s.log.Debug("User is not owner of post",
			slog.Int64("user_id", userID),
			slog.Int64("owner_id", post.OwnerID))
		s.metrics.IncrementPostOperations("delete", false)
		return custom_errors.ErrForbidden
	}

	err = s.postRepo.Delete(ctx, id)
	if err != nil {
		s.metrics.IncrementPostOperations("delete", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for delete", slog.Int64("id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to delete post", slog.String("error", err.Error()), slog.Int64("id", id))
		return custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementPostOperations("delete", true)
	return nil
}

// lookupAuthor resolves the owner's profile for display. A missing or
// unreadable profile yields nil; rendering falls back to an anonymous
// author label.
func (s *PostService) lookupAuthor(ctx context.Context, ownerID int64) *model.Profile {
	author, err := s.profileRepo.GetByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrProfileNotFound) {
			s.log.Debug("Author profile not found", slog.Int64("owner_id", ownerID))
		} else {
			s.log.Error("Failed to get author profile",
				slog.String("error", err.Error()),
				slog.Int64("owner_id", ownerID))
		}
		return nil
	}
	return author
}
