package browse

import (
	"context"
	"errors"
	"log/slog"

	"blogboard/internal/custom_errors"
	"blogboard/internal/logger"
	"blogboard/internal/model"
)

// SessionSource is the slice of the auth collaborator needed at boot.
type SessionSource interface {
	GetCurrentSession(ctx context.Context) (*model.Identity, error)
}

// InitializeSession runs once at application start: if the auth
// collaborator reports a live session, the user store is seeded from
// it. No session is not an error; the store simply stays anonymous.
func InitializeSession(ctx context.Context, source SessionSource, users *UserStore, log *logger.Logger) error {
	identity, err := source.GetCurrentSession(ctx)
	if err != nil {
		if errors.Is(err, custom_errors.ErrSessionNotFound) {
			log.Debug("No existing session")
			return nil
		}
		log.Error("Failed to look up session", slog.String("error", err.Error()))
		return err
	}

	if identity != nil && identity.LoggedIn {
		users.SetUser(*identity)
		log.Debug("Session restored", slog.Int64("user_id", identity.ID))
	}
	return nil
}
