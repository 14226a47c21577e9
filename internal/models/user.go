package models

import "time"

// User is the row shape of the users table.
type User struct {
	UserID            string     `db:"user_id"`
	Name              string     `db:"name"`
	Email             string     `db:"email"`
	Role              string     `db:"role"`
	PhotoURL          string     `db:"photo_url"`
	Disabled          bool       `db:"disabled"`
	CreatedAt         time.Time  `db:"created_at"`
	LastLoginAt       *time.Time `db:"last_login_at"`
	SessionsRevokedAt *time.Time `db:"sessions_revoked_at"`
}
