package dto

import "github.com/SscSPs/etsy_atlas/internal/core/domain"

// SessionUser is the identity returned by the session endpoint.
type SessionUser struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
}

// SessionEnvelope is the JSON body of every session endpoint response.
type SessionEnvelope struct {
	Success       bool         `json:"success"`
	Message       string       `json:"message,omitempty"`
	Error         string       `json:"error,omitempty"`
	Code          string       `json:"code,omitempty"`
	Details       string       `json:"details,omitempty"`
	Authenticated *bool        `json:"authenticated,omitempty"`
	User          *SessionUser `json:"user,omitempty"`
	ExpiresIn     int64        `json:"expiresIn,omitempty"`
	ExpiresAt     string       `json:"expiresAt,omitempty"`
}

// ExchangeCodeRequest carries an OAuth authorization code from the browser.
type ExchangeCodeRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state"`
}

func ToSessionUser(s *domain.Session) *SessionUser {
	return &SessionUser{
		UID:           s.UserID,
		Email:         s.Email,
		EmailVerified: s.EmailVerified,
		Name:          s.Name,
		Picture:       s.Picture,
	}
}
