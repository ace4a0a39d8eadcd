package model

import "github.com/jackc/pgx/v5/pgtype"

// Account holds sign-in credentials. The password hash never leaves the
// auth service.
type Account struct {
	ID           int64              `json:"id"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"-"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}
