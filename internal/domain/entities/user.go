package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleUser       UserRole = "USER"
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleSuperAdmin UserRole = "SUPER_ADMIN"
)

// IsAdmin reports whether the role may access the admin surface
func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin || r == UserRoleSuperAdmin
}

// UserStatus represents account state
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// KYCStatus represents the aggregate KYC verification status of a user,
// derived from the user's document set.
type KYCStatus string

const (
	KYCPending     KYCStatus = "PENDING"
	KYCUnderReview KYCStatus = "UNDER_REVIEW"
	KYCApproved    KYCStatus = "APPROVED"
	KYCRejected    KYCStatus = "REJECTED"
)

// User represents a user entity with its financial ledger fields.
// Balance never goes below zero; debits are guarded at the persistence layer.
type User struct {
	ID              uuid.UUID   `json:"id"`
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	PasswordHash    string      `json:"-"`
	Role            UserRole    `json:"role"`
	Status          UserStatus  `json:"status"`
	KYCStatus       KYCStatus   `json:"kycStatus"`
	Balance         float64     `json:"balance"`
	TotalInvested   float64     `json:"totalInvested"`
	TotalEarnings   float64     `json:"totalEarnings"`
	ReferralCode    string      `json:"referralCode"`
	ReferredBy      null.String `json:"referredBy,omitempty"`
	EmailVerifiedAt null.Time   `json:"emailVerifiedAt,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Email        string `json:"email" binding:"required,email"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Password     string `json:"password" binding:"required,min=8"`
	ReferralCode string `json:"referralCode"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// ChangePasswordInput represents input for changing user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdateUserInput is the admin-side mutable subset of a user
type UpdateUserInput struct {
	Name   *string     `json:"name"`
	Role   *UserRole   `json:"role"`
	Status *UserStatus `json:"status"`
}
