package auth

// Identity is the result of a successful authentication check. It contains
// facts about who the caller is, no authorization decisions.
type Identity struct {
	UserID   string
	Username string
	Role     string
	Verified bool
}
