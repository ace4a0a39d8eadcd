package account_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"blogboard/internal/custom_errors"
	"blogboard/internal/logger"
	"blogboard/internal/model"
	"blogboard/internal/repository/postgres/db"
)

const uniqueViolationCode = "23505"

type AccountRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewAccountRepository(db db.PgDB, log *logger.Logger) *AccountRepository {
	return &AccountRepository{db: db, log: log}
}

func (a *AccountRepository) Create(ctx context.Context, account *model.Account) (*model.Account, error) {
	args := pgx.NamedArgs{
		"email":         account.Email,
		"password_hash": account.PasswordHash,
		"created_at":    pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	query := `
		INSERT INTO accounts (email, password_hash, created_at)
		VALUES (@email, @password_hash, @created_at)
		RETURNING id, email, password_hash, created_at`

	var created model.Account
	err := a.db.QueryRow(ctx, query, args).Scan(
		&created.ID,
		&created.Email,
		&created.PasswordHash,
		&created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			a.log.Debug("Email already registered", slog.String("email", account.Email))
			return nil, custom_errors.ErrEmailAlreadyUsed
		}
		a.log.Error("Error creating account", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &created, nil
}

func (a *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := pgx.NamedArgs{"email": email}
	query := `SELECT id, email, password_hash, created_at FROM accounts WHERE email = @email`
	return a.scanOne(ctx, query, args, slog.String("email", email))
}

func (a *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	args := pgx.NamedArgs{"id": id}
	query := `SELECT id, email, password_hash, created_at FROM accounts WHERE id = @id`
	return a.scanOne(ctx, query, args, slog.Int64("id", id))
}

func (a *AccountRepository) scanOne(ctx context.Context, query string, args pgx.NamedArgs, key slog.Attr) (*model.Account, error) {
	account := &model.Account{}
	err := a.db.QueryRow(ctx, query, args).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.log.Debug("Account not found", key)
			return nil, custom_errors.ErrUserNotFound
		}
		a.log.Error("Error getting account", key, slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return account, nil
}
