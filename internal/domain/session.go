package domain

// Session is the cached identity snapshot held server-side for a
// logged-in user. The durable User row is the source of truth for the
// fields it mirrors; the snapshot is only refreshed on the profile
// update path and otherwise expires with its cache TTL.
type Session struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}
