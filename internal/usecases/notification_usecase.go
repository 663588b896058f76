package usecases

import (
	"context"

	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
	"minevest.backend/internal/domain/repositories"
)

// NotificationUsecase handles the user's in-app inbox
type NotificationUsecase struct {
	notifRepo repositories.NotificationRepository
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(notifRepo repositories.NotificationRepository) *NotificationUsecase {
	return &NotificationUsecase{notifRepo: notifRepo}
}

// List returns a user's notifications together with the unread count
func (u *NotificationUsecase) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Notification, int64, int64, error) {
	notifications, total, err := u.notifRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := u.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	return notifications, total, unread, nil
}

// MarkRead marks one notification read, owner-scoped
func (u *NotificationUsecase) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return u.notifRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all of a user's notifications read
func (u *NotificationUsecase) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return u.notifRepo.MarkAllRead(ctx, userID)
}
