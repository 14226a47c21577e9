package domain

import "time"

// Identity is the verified payload of an identity-provider token.
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
	AuthTime      time.Time
}

// Session is the decoded, verified content of a session artifact.
type Session struct {
	SessionID     string    `json:"-"`
	UserID        string    `json:"uid"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	Name          string    `json:"name,omitempty"`
	Picture       string    `json:"picture,omitempty"`
	IssuedAt      time.Time `json:"-"`
	ExpiresAt     time.Time `json:"-"`
}

// IssuedSession is a freshly minted session artifact and its lifetime.
type IssuedSession struct {
	Token     string
	Session   Session
	ExpiresIn time.Duration
}
