package model

import "github.com/jackc/pgx/v5/pgtype"

// Post is a single blog entry. ID, OwnerID and CreatedAt are assigned at
// creation time and never change afterwards.
type Post struct {
	ID        int64              `json:"id"`
	OwnerID   int64              `json:"owner_id"`
	Title     string             `json:"title"`
	Excerpt   *string            `json:"excerpt,omitempty"`
	Content   string             `json:"content"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}
