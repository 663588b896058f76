package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/infrastructure/models"
)

// SessionRepository implements refresh session data operations
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session
func (r *SessionRepository) Create(ctx context.Context, session *entities.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	m := sessionToModel(session)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByTokenHash looks up an active, unexpired session by refresh token hash
func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error) {
	var m models.Session
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("refresh_token_hash = ? AND is_active = ? AND expires_at > ?", tokenHash, true, time.Now()).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrSessionInvalid
		}
		return nil, err
	}
	return sessionToEntity(&m), nil
}

// Invalidate deactivates a single session
func (r *SessionRepository) Invalidate(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Session{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSessionInvalid
	}
	return nil
}

// InvalidateAllForUser deactivates every active session of a user. Used on
// password change; affecting zero rows is not an error.
func (r *SessionRepository) InvalidateAllForUser(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
}

func sessionToModel(s *entities.Session) *models.Session {
	return &models.Session{
		ID:               s.ID,
		UserID:           s.UserID,
		RefreshTokenHash: s.RefreshTokenHash,
		UserAgent:        s.UserAgent,
		IPAddress:        s.IPAddress,
		IsActive:         s.IsActive,
		ExpiresAt:        s.ExpiresAt,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func sessionToEntity(m *models.Session) *entities.Session {
	return &entities.Session{
		ID:               m.ID,
		UserID:           m.UserID,
		RefreshTokenHash: m.RefreshTokenHash,
		UserAgent:        m.UserAgent,
		IPAddress:        m.IPAddress,
		IsActive:         m.IsActive,
		ExpiresAt:        m.ExpiresAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
