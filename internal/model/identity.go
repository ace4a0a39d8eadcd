package model

// Identity is the authenticated user as seen by clients. It is always
// replaced wholesale: either a full identity from a live session or the
// zero value with LoggedIn false.
type Identity struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	LoggedIn  bool   `json:"logged_in"`
}
