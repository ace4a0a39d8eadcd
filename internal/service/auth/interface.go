package auth_service

import (
	"context"
	"time"

	"blogboard/internal/model"
)

// Service is the authentication collaborator: it owns credentials and
// live sessions. Tokens are opaque bearer strings.
//
//go:generate mockery --name Service --dir . --output ../../../mocks --outpkg mocks --structname AuthService --filename AuthService.go
type Service interface {
	SignUp(ctx context.Context, req *model.SignUpDTO) (*model.Identity, string, error)
	SignIn(ctx context.Context, email, password string) (*model.Identity, string, error)
	GetSession(ctx context.Context, token string) (*model.Identity, error)
	SignOut(ctx context.Context, token string) error
}

// SessionStore keeps token -> identity mappings with a TTL.
//
//go:generate mockery --name SessionStore --dir . --output ../../../mocks --outpkg mocks --structname SessionStore --filename SessionStore.go
type SessionStore interface {
	Put(ctx context.Context, token string, identity *model.Identity, ttl time.Duration) error
	Get(ctx context.Context, token string) (*model.Identity, error)
	Delete(ctx context.Context, token string) error
}
