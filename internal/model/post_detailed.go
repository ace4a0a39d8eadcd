package model

// PostDetailed joins a post with its author profile. Author is nil when
// the owner has no profile row; display code falls back to an anonymous
// label in that case.
type PostDetailed struct {
	Post   *Post    `json:"post"`
	Author *Profile `json:"author,omitempty"`
}
