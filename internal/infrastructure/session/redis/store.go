package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blogboard/internal/custom_errors"
	cache "blogboard/internal/infrastructure/cache/redis"
	"blogboard/internal/infrastructure/metrics"
	"blogboard/internal/logger"
	"blogboard/internal/model"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps bearer sessions in redis with a TTL, so sessions
// survive server restarts and expire on their own.
type SessionStore struct {
	client  *cache.Client
	log     *logger.Logger
	metrics metrics.Provider
}

func NewSessionStore(client *cache.Client, log *logger.Logger, metrics metrics.Provider) *SessionStore {
	return &SessionStore{
		client:  client,
		log:     log,
		metrics: metrics,
	}
}

func (s *SessionStore) Put(ctx context.Context, token string, identity *model.Identity, ttl time.Duration) error {
	if identity == nil {
		return fmt.Errorf("identity cannot be nil")
	}

	if err := s.client.Set(ctx, s.key(token), identity, ttl); err != nil {
		s.metrics.IncrementSessionOperations("put", false)
		s.log.Error("Failed to store session",
			slog.Int64("user_id", identity.ID),
			slog.String("error", err.Error()))
		return err
	}

	s.metrics.IncrementSessionOperations("put", true)
	s.log.Debug("Session stored",
		slog.Int64("user_id", identity.ID),
		slog.Duration("ttl", ttl))
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*model.Identity, error) {
	var identity model.Identity
	err := s.client.Get(ctx, s.key(token), &identity)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			s.metrics.IncrementSessionOperations("get_miss", true)
			return nil, custom_errors.ErrSessionNotFound
		}
		s.metrics.IncrementSessionOperations("get", false)
		return nil, err
	}

	s.metrics.IncrementSessionOperations("get", true)
	return &identity, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Delete(ctx, s.key(token)); err != nil {
		s.metrics.IncrementSessionOperations("delete", false)
		return err
	}
	s.metrics.IncrementSessionOperations("delete", true)
	return nil
}

func (s *SessionStore) key(token string) string {
	return sessionKeyPrefix + token
}
