package repositories

import (
	"context"

	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
)

// SessionRepository defines refresh session data operations
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error)
	Invalidate(ctx context.Context, id uuid.UUID) error
	InvalidateAllForUser(ctx context.Context, userID uuid.UUID) error
}
