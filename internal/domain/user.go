package domain

// User is a back-office login. The credential never leaves the store.
type User struct {
	Meta
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

func (u User) Matches(query string) bool {
	return matchesAny(query, u.Username, u.ID)
}

// UserUpdate changes the username, the password, or both. Password is plaintext
// and gets hashed by the store.
type UserUpdate struct {
	Username *string
	Password *string
}
