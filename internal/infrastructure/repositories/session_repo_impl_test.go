package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
)

func seedSession(t *testing.T, repo *SessionRepository, userID uuid.UUID, tokenHash string, expiresAt time.Time) *entities.Session {
	t.Helper()
	s := &entities.Session{
		ID:               uuid.New(),
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		UserAgent:        "test-agent",
		IPAddress:        "127.0.0.1",
		IsActive:         true,
		ExpiresAt:        expiresAt,
	}
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}

func TestSessionRepository_GetByTokenHash(t *testing.T) {
	db := newTestDB(t)
	createSessionTable(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	s := seedSession(t, repo, userID, "hash-1", time.Now().Add(time.Hour))

	got, err := repo.GetByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, s.ID, got.ID)

	_, err = repo.GetByTokenHash(ctx, "unknown")
	require.ErrorIs(t, err, domainerrors.ErrSessionInvalid)
}

func TestSessionRepository_ExpiredSessionRejected(t *testing.T) {
	db := newTestDB(t)
	createSessionTable(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	seedSession(t, repo, uuid.New(), "hash-expired", time.Now().Add(-time.Minute))

	_, err := repo.GetByTokenHash(ctx, "hash-expired")
	require.ErrorIs(t, err, domainerrors.ErrSessionInvalid)
}

func TestSessionRepository_Invalidate(t *testing.T) {
	db := newTestDB(t)
	createSessionTable(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	s := seedSession(t, repo, uuid.New(), "hash-2", time.Now().Add(time.Hour))

	require.NoError(t, repo.Invalidate(ctx, s.ID))
	_, err := repo.GetByTokenHash(ctx, "hash-2")
	require.ErrorIs(t, err, domainerrors.ErrSessionInvalid)

	// Already invalidated.
	require.ErrorIs(t, repo.Invalidate(ctx, s.ID), domainerrors.ErrSessionInvalid)
}

func TestSessionRepository_InvalidateAllForUser(t *testing.T) {
	db := newTestDB(t)
	createSessionTable(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedSession(t, repo, userID, "hash-a", time.Now().Add(time.Hour))
	seedSession(t, repo, userID, "hash-b", time.Now().Add(time.Hour))
	other := seedSession(t, repo, uuid.New(), "hash-c", time.Now().Add(time.Hour))

	require.NoError(t, repo.InvalidateAllForUser(ctx, userID))

	_, err := repo.GetByTokenHash(ctx, "hash-a")
	require.ErrorIs(t, err, domainerrors.ErrSessionInvalid)
	_, err = repo.GetByTokenHash(ctx, "hash-b")
	require.ErrorIs(t, err, domainerrors.ErrSessionInvalid)

	// Other users' sessions survive.
	got, err := repo.GetByTokenHash(ctx, "hash-c")
	require.NoError(t, err)
	require.Equal(t, other.ID, got.ID)

	// No active sessions left is not an error.
	require.NoError(t, repo.InvalidateAllForUser(ctx, userID))
}
