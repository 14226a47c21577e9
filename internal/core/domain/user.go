package domain

import "time"

// UserRole controls access to administrative operations.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an application account keyed by the identity provider's subject id.
type User struct {
	UserID            string     `json:"uid"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Role              UserRole   `json:"role"`
	PhotoURL          string     `json:"photoURL,omitempty"`
	Disabled          bool       `json:"disabled"`
	CreatedAt         time.Time  `json:"createdAt"`
	LastLoginAt       *time.Time `json:"lastLogin,omitempty"`
	SessionsRevokedAt *time.Time `json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
