package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/domain/repositories"
	"minevest.backend/pkg/crypto"
	"minevest.backend/pkg/email"
	"minevest.backend/pkg/jwt"
	"minevest.backend/pkg/logger"
)

const (
	purposeEmailVerification = "email_verification"
	purposePasswordReset     = "password_reset"

	// ReferralBonusAmount is the flat bonus credited to the referrer when a
	// referred user registers.
	ReferralBonusAmount = 10.00
)

// AuthUsecase handles registration, login and session lifecycle
type AuthUsecase struct {
	userRepo    repositories.UserRepository
	codeRepo    repositories.VerificationCodeRepository
	sessionRepo repositories.SessionRepository
	txRepo      repositories.TransactionRepository
	notifRepo   repositories.NotificationRepository
	uow         repositories.UnitOfWork
	jwtService  *jwt.JWTService
	mailer      email.Dispatcher

	refreshExpiry time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	codeRepo repositories.VerificationCodeRepository,
	sessionRepo repositories.SessionRepository,
	txRepo repositories.TransactionRepository,
	notifRepo repositories.NotificationRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
	mailer email.Dispatcher,
	refreshExpiry time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:      userRepo,
		codeRepo:      codeRepo,
		sessionRepo:   sessionRepo,
		txRepo:        txRepo,
		notifRepo:     notifRepo,
		uow:           uow,
		jwtService:    jwtService,
		mailer:        mailer,
		refreshExpiry: refreshExpiry,
	}
}

// Register creates a new user account. A valid referral code credits the
// referrer a flat bonus; bonus failures are logged and swallowed so
// registration itself never fails because of them.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	var referrer *entities.User
	if input.ReferralCode != "" {
		referrer, err = u.userRepo.GetByReferralCode(ctx, input.ReferralCode)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.BadRequest("unknown referral code")
			}
			return nil, err
		}
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	referralCode, err := crypto.GenerateReferralCode()
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleUser,
		Status:       entities.UserStatusActive,
		KYCStatus:    entities.KYCPending,
		ReferralCode: referralCode,
	}
	if referrer != nil {
		user.ReferredBy = null.StringFrom(referrer.ID.String())
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	code, err := crypto.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}
	if err := u.codeRepo.Create(ctx, user.ID, purposeEmailVerification, code); err != nil {
		return nil, err
	}
	u.mailer.SendVerificationCode(ctx, user.Email, code)
	u.mailer.SendWelcome(ctx, user.Email, user.Name)

	if referrer != nil {
		if err := u.creditReferralBonus(ctx, referrer, user); err != nil {
			logger.Error(ctx, "referral bonus failed",
				zap.String("referrer_id", referrer.ID.String()),
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
		}
	}

	return user, nil
}

func (u *AuthUsecase) creditReferralBonus(ctx context.Context, referrer, referred *entities.User) error {
	return u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.CreditBalance(ctx, referrer.ID, ReferralBonusAmount); err != nil {
			return err
		}

		tx := &entities.Transaction{
			UserID:    referrer.ID,
			Type:      entities.TransactionTypeReferralBonus,
			Amount:    ReferralBonusAmount,
			Status:    entities.TransactionStatusCompleted,
			Reference: null.StringFrom(referred.ID.String()),
		}
		if err := u.txRepo.Create(ctx, tx); err != nil {
			return err
		}

		return u.notifRepo.Create(ctx, &entities.Notification{
			UserID:  referrer.ID,
			Type:    entities.NotificationTypeReferralBonus,
			Title:   "Referral bonus credited",
			Message: referred.Name + " joined with your referral code.",
		})
	})
}

// Login authenticates a user and opens a new session scoped to the given
// token audience. The admin audience requires an admin role.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput, audience, userAgent, ipAddress string) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if user.Status != entities.UserStatusActive {
		return nil, domainerrors.Forbidden("account suspended")
	}

	if audience == jwt.AudienceAdmin && !user.Role.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role), audience)
	if err != nil {
		return nil, err
	}

	session := &entities.Session{
		UserID:           user.ID,
		RefreshTokenHash: crypto.HashToken(pair.RefreshToken),
		UserAgent:        userAgent,
		IPAddress:        ipAddress,
		IsActive:         true,
		ExpiresAt:        time.Now().Add(u.refreshExpiry),
	}
	if err := u.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// Refresh rotates a refresh token: the presented session is invalidated and a
// new one is written. A replayed (already rotated) token fails the session
// lookup and is rejected.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrSessionInvalid
	}

	session, err := u.sessionRepo.GetByTokenHash(ctx, crypto.HashToken(refreshToken))
	if err != nil {
		return nil, err
	}

	audience := jwt.AudienceUser
	if claims.HasAudience(jwt.AudienceAdmin) {
		audience = jwt.AudienceAdmin
	}

	pair, err := u.jwtService.GenerateTokenPair(claims.UserID, claims.Email, claims.Role, audience)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.sessionRepo.Invalidate(ctx, session.ID); err != nil {
			return err
		}
		return u.sessionRepo.Create(ctx, &entities.Session{
			UserID:           session.UserID,
			RefreshTokenHash: crypto.HashToken(pair.RefreshToken),
			UserAgent:        userAgent,
			IPAddress:        ipAddress,
			IsActive:         true,
			ExpiresAt:        time.Now().Add(u.refreshExpiry),
		})
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout invalidates the session holding the presented refresh token
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	session, err := u.sessionRepo.GetByTokenHash(ctx, crypto.HashToken(refreshToken))
	if err != nil {
		return err
	}
	return u.sessionRepo.Invalidate(ctx, session.ID)
}

// ChangePassword verifies the current password, replaces the hash and
// invalidates every session of the user, forcing re-authentication everywhere.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	newHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
			return err
		}
		return u.sessionRepo.InvalidateAllForUser(ctx, userID)
	})
}

// VerifyEmail consumes a verification code and stamps the user verified
func (u *AuthUsecase) VerifyEmail(ctx context.Context, userID uuid.UUID, code string) error {
	if err := u.codeRepo.Consume(ctx, userID, purposeEmailVerification, code); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.BadRequest("invalid or expired verification code")
		}
		return err
	}
	return u.userRepo.MarkEmailVerified(ctx, userID)
}

// ForgotPassword issues a password reset code. An unknown email is silently
// accepted so the endpoint does not reveal which addresses exist.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := u.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}

	code, err := crypto.GenerateVerificationCode()
	if err != nil {
		return err
	}
	if err := u.codeRepo.Create(ctx, user.ID, purposePasswordReset, code); err != nil {
		return err
	}

	u.mailer.SendPasswordResetCode(ctx, user.Email, code)
	return nil
}

// ResetPassword consumes a reset code, replaces the password and invalidates
// all sessions
func (u *AuthUsecase) ResetPassword(ctx context.Context, emailAddr, code, newPassword string) error {
	user, err := u.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.BadRequest("invalid or expired reset code")
		}
		return err
	}

	if err := u.codeRepo.Consume(ctx, user.ID, purposePasswordReset, code); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.BadRequest("invalid or expired reset code")
		}
		return err
	}

	newHash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.UpdatePassword(ctx, user.ID, newHash); err != nil {
			return err
		}
		return u.sessionRepo.InvalidateAllForUser(ctx, user.ID)
	})
}

// GetProfile returns the authenticated user's profile
func (u *AuthUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}
