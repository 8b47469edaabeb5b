package models

// User represents a registered account
// Password is stored hashed (bcrypt); never rendered
type User struct {
	ID       int64  `json:"id" db:"id"`
	Fullname string `json:"fullname" db:"fullname"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"` // Hashed
}

// RegisterRequest is the /register form
type RegisterRequest struct {
	Fullname string
	Email    string
	Password string
	Confirm  string
}

// LoginRequest is the /login form
type LoginRequest struct {
	Email    string
	Password string
}

// DisplayName is what the dashboard greets the user with
func (u User) DisplayName() string {
	if u.Fullname != "" {
		return u.Fullname
	}
	return u.Email
}
