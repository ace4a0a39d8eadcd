package account_repository

import (
	"context"

	"blogboard/internal/model"
)

//go:generate mockery --name Repository --dir . --output ../../../mocks --outpkg mocks --structname AccountRepository --filename AccountRepository.go
type Repository interface {
	Create(ctx context.Context, account *model.Account) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
}
