package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models a stored credential: identity plus password hash and role.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the transient projection of a User carried by a verified
// token. It lives for the duration of a single request.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
