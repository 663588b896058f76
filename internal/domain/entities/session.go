package entities

import (
	"time"

	"github.com/google/uuid"
)

// Session is a refresh-token holder. One user may hold many concurrent
// sessions (multi-device). Created on login, rotated on refresh, invalidated
// on logout and on password change (all sessions for the user).
type Session struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	RefreshTokenHash string    `json:"-"`
	UserAgent        string    `json:"userAgent"`
	IPAddress        string    `json:"ipAddress"`
	IsActive         bool      `json:"isActive"`
	ExpiresAt        time.Time `json:"expiresAt"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
