package domain

// DefaultUserID is the id given to the single registrant.
const DefaultUserID = 1

// User is the one registered account. Login and logout only flip LoggedIn.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,notblank"`
	LoggedIn bool   `json:"logged_in"`
}

// NewUser creates a logged-out user with the default id.
func NewUser(name, email string) *User {
	return &User{ID: DefaultUserID, Name: name, Email: email}
}

// Login sets LoggedIn when email matches exactly (case-sensitive) and
// reports whether it did. A mismatch leaves the flag untouched.
func (u *User) Login(email string) bool {
	if email != u.Email {
		return false
	}
	u.LoggedIn = true
	return true
}

// Logout clears LoggedIn.
func (u *User) Logout() {
	u.LoggedIn = false
}
