package entities

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification
type NotificationType string

const (
	NotificationTypeReferralBonus      NotificationType = "REFERRAL_BONUS"
	NotificationTypeKYCDecision        NotificationType = "KYC_DECISION"
	NotificationTypeInvestmentMatured  NotificationType = "INVESTMENT_MATURED"
	NotificationTypeInvestmentWithdraw NotificationType = "INVESTMENT_WITHDRAWN"
)

// Notification is an in-app message for a user
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}
