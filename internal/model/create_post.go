package model

type CreatePostDTO struct {
	OwnerID int64   `json:"owner_id" validate:"required,gt=0"`
	Title   string  `json:"title" validate:"required,min=1"`
	Excerpt *string `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content string  `json:"content" validate:"required,min=1"`
}
