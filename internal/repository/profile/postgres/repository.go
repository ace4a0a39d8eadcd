package profile_repository_postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"blogboard/internal/custom_errors"
	"blogboard/internal/logger"
	"blogboard/internal/model"
	"blogboard/internal/repository/postgres/db"
)

type ProfileRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewProfileRepository(db db.PgDB, log *logger.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, log: log}
}

func (p *ProfileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	args := pgx.NamedArgs{
		"user_id":    profile.UserID,
		"first_name": profile.FirstName,
		"last_name":  profile.LastName,
	}
	query := `
		INSERT INTO profiles (user_id, first_name, last_name)
		VALUES (@user_id, @first_name, @last_name)
		ON CONFLICT (user_id) DO UPDATE SET first_name = @first_name, last_name = @last_name`

	if _, err := p.db.Exec(ctx, query, args); err != nil {
		p.log.Error("Error upserting profile", slog.Int64("user_id", profile.UserID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}

func (p *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	args := pgx.NamedArgs{"user_id": userID}
	query := `SELECT user_id, first_name, last_name FROM profiles WHERE user_id = @user_id`

	profile := &model.Profile{}
	err := p.db.QueryRow(ctx, query, args).Scan(&profile.UserID, &profile.FirstName, &profile.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Profile not found", slog.Int64("user_id", userID))
			return nil, custom_errors.ErrProfileNotFound
		}
		p.log.Error("Error getting profile", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return profile, nil
}
