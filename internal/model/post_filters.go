package model

// PostFilters narrows a listing. Search is a case-insensitive substring
// match over title, content and excerpt; nil or empty means no filter.
type PostFilters struct {
	Search  *string
	OwnerID *int64
	Limit   *int
	Offset  *int
}
