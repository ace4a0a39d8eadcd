package browse

import (
	"strings"

	"blogboard/internal/model"
)

const (
	anonymousAuthor = "Anonymous User"
	previewLength   = 150
)

// AuthorName renders a post's author for display, falling back to an
// anonymous label when the owner has no profile.
func AuthorName(post *model.PostDetailed) string {
	if post == nil || post.Author == nil {
		return anonymousAuthor
	}
	name := strings.TrimSpace(post.Author.FirstName + " " + post.Author.LastName)
	if name == "" {
		return anonymousAuthor
	}
	return name
}

// Preview derives the card text: the excerpt when present, otherwise
// the first 150 characters of the content.
func Preview(post *model.Post) string {
	if post == nil {
		return ""
	}
	if post.Excerpt != nil && strings.TrimSpace(*post.Excerpt) != "" {
		return *post.Excerpt
	}
	runes := []rune(post.Content)
	if len(runes) <= previewLength {
		return post.Content
	}
	return string(runes[:previewLength]) + "..."
}
