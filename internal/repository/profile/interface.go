package profile_repository

import (
	"context"

	"blogboard/internal/model"
)

//go:generate mockery --name Repository --dir . --output ../../../mocks --outpkg mocks --structname ProfileRepository --filename ProfileRepository.go
type Repository interface {
	Upsert(ctx context.Context, profile *model.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*model.Profile, error)
}
