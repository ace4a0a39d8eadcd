package post_service

import (
	"context"

	"blogboard/internal/model"
)

//go:generate mockery --name Service --dir . --output ../../../mocks --outpkg mocks --structname PostService --filename PostService.go
type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error)
	GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error)
	ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.PostDetailed, int, error)
	UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) (*model.Post, error)
	DeletePost(ctx context.Context, userID int64, id int64) error
}
