package blog_client

import (
	"context"

	"blogboard/internal/model"
)

// Client is the remote-backend collaborator as seen from the browse
// side: post CRUD plus the auth session operations.
//
//go:generate mockery --name Client --dir . --output ../../../mocks --outpkg mocks --structname BlogClient --filename BlogClient.go
type Client interface {
	FetchPage(ctx context.Context, page, pageSize int, search string) ([]*model.PostDetailed, int, error)
	GetPost(ctx context.Context, id int64) (*model.PostDetailed, error)
	CreatePost(ctx context.Context, title string, excerpt *string, content string) (*model.PostDetailed, error)
	UpdatePost(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error)
	DeletePost(ctx context.Context, id int64) error

	SignUp(ctx context.Context, req *model.SignUpDTO) (*model.Identity, error)
	SignIn(ctx context.Context, email, password string) (*model.Identity, error)
	SignOut(ctx context.Context) error
	GetCurrentSession(ctx context.Context) (*model.Identity, error)
}
