package memory

import (
	"context"
	"log/slog"
	"sync"

	"blogboard/internal/custom_errors"
	"blogboard/internal/logger"
	"blogboard/internal/model"
)

type ProfileRepository struct {
	log      *logger.Logger
	mu       sync.RWMutex
	profiles map[int64]*model.Profile
}

func NewProfileRepository(log *logger.Logger) *ProfileRepository {
	return &ProfileRepository{
		log:      log,
		profiles: make(map[int64]*model.Profile),
	}
}

func (p *ProfileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	stored := *profile
	p.profiles[profile.UserID] = &stored
	return nil
}

func (p *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	profile, exists := p.profiles[userID]
	if !exists {
		p.log.Debug("Profile not found", slog.Int64("user_id", userID))
		return nil, custom_errors.ErrProfileNotFound
	}

	result := *profile
	return &result, nil
}
