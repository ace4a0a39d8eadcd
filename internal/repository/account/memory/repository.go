package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"blogboard/internal/custom_errors"
	"blogboard/internal/logger"
	"blogboard/internal/model"
)

type AccountRepository struct {
	log      *logger.Logger
	mu       sync.RWMutex
	accounts map[int64]*model.Account
	byEmail  map[string]int64
	nextID   int64
}

func NewAccountRepository(log *logger.Logger) *AccountRepository {
	return &AccountRepository{
		log:      log,
		accounts: make(map[int64]*model.Account),
		byEmail:  make(map[string]int64),
		nextID:   1,
	}
}

func (a *AccountRepository) Create(ctx context.Context, account *model.Account) (*model.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byEmail[account.Email]; exists {
		a.log.Debug("Email already registered", slog.String("email", account.Email))
		return nil, custom_errors.ErrEmailAlreadyUsed
	}

	created := &model.Account{
		ID:           a.nextID,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		CreatedAt:    pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	a.nextID++

	a.accounts[created.ID] = created
	a.byEmail[created.Email] = created.ID

	result := *created
	return &result, nil
}

func (a *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	id, exists := a.byEmail[email]
	if !exists {
		return nil, custom_errors.ErrUserNotFound
	}
	result := *a.accounts[id]
	return &result, nil
}

func (a *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	account, exists := a.accounts[id]
	if !exists {
		return nil, custom_errors.ErrUserNotFound
	}
	result := *account
	return &result, nil
}
