package model

// UpdatePostDTO carries the mutable fields of a post. Nil means "leave
// unchanged". ID, owner and created_at have no update path.
type UpdatePostDTO struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Excerpt *string `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}
