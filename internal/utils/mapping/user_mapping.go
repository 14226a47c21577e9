package mapping

import (
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/SscSPs/etsy_atlas/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:            d.UserID,
		Name:              d.Name,
		Email:             d.Email,
		Role:              string(d.Role),
		PhotoURL:          d.PhotoURL,
		Disabled:          d.Disabled,
		CreatedAt:         d.CreatedAt,
		LastLoginAt:       d.LastLoginAt,
		SessionsRevokedAt: d.SessionsRevokedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:            m.UserID,
		Name:              m.Name,
		Email:             m.Email,
		Role:              domain.UserRole(m.Role),
		PhotoURL:          m.PhotoURL,
		Disabled:          m.Disabled,
		CreatedAt:         m.CreatedAt,
		LastLoginAt:       m.LastLoginAt,
		SessionsRevokedAt: m.SessionsRevokedAt,
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
