package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bookstore-service/internal/auth"
	"github.com/spec-kit/bookstore-service/internal/config"
	"github.com/spec-kit/bookstore-service/internal/domain"
	"github.com/spec-kit/bookstore-service/internal/events"
	"github.com/spec-kit/bookstore-service/internal/repository"
	apperrors "github.com/spec-kit/bookstore-service/pkg/util"
)

// TokenPair is the result of login and refresh: a short-lived access token
// and a long-lived refresh token for the same subject and role.
type TokenPair struct {
	UserID           int64
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// CredentialService orchestrates signup, login, refresh, and password
// management above the token components and the user store.
type CredentialService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	issuer     *auth.Issuer
	verifier   *auth.Verifier
	dispatcher events.Dispatcher
	bcryptCost int
	resetTTL   time.Duration
}

// CredentialDependencies encapsulates collaborator requirements.
type CredentialDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Issuer            *auth.Issuer
	Verifier          *auth.Verifier
	Dispatcher        events.Dispatcher
}

// NewCredentialService builds the service.
func NewCredentialService(cfg config.Config, deps CredentialDependencies) *CredentialService {
	return &CredentialService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		issuer:     deps.Issuer,
		verifier:   deps.Verifier,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// Signup registers a new account with the default USER role. Email matching
// is exact and case-sensitive.
func (s *CredentialService) Signup(ctx context.Context, email, password, name string) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicateResource("email already registered", map[string]any{"email": email})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRegistered,
		UserID:    user.ID,
		Timestamp: time.Now(),
		Payload:   events.UserRegisteredPayload{Email: user.Email, Name: user.Name},
	})

	return user, nil
}

// Login verifies credentials and issues a fresh token pair.
func (s *CredentialService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUserNotFound(map[string]any{"email": email})
		}
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	return s.issuePair(user.ID, user.Role)
}

// Refresh exchanges a valid refresh token for a new access token. The role
// is taken from the verified token, not re-read from the store; the user is
// re-looked-up only to confirm the subject still exists. The refresh token
// is passed through unchanged, so its expiry is the original one.
func (s *CredentialService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.verifier.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid refresh token")
	}

	userID, err := strconv.ParseInt(claims.UserID(), 10, 64)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUserNotFound(map[string]any{"userId": userID})
		}
		return nil, err
	}

	access, accessExp, err := s.issuer.IssueAccessToken(claims.UserID(), claims.Role)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		UserID:           user.ID,
		AccessToken:      access,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *CredentialService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUserNotFound(map[string]any{"userId": userID})
		}
		return err
	}

	if !auth.VerifyPassword(user.PasswordHash, currentPassword) {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// RequestPasswordReset persists a single-use reset token for the account.
func (s *CredentialService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUserNotFound(map[string]any{"email": email})
		}
		return nil, err
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *CredentialService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid reset token")
		}
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewUnauthorized("reset token expired or used")
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUserNotFound(map[string]any{"userId": token.UserID})
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	return s.resets.MarkUsed(ctx, token.ID)
}

func (s *CredentialService) issuePair(userID int64, role domain.Role) (*TokenPair, error) {
	subject := strconv.FormatInt(userID, 10)

	access, accessExp, err := s.issuer.IssueAccessToken(subject, role)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.issuer.IssueRefreshToken(subject, role)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		UserID:           userID,
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *CredentialService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
