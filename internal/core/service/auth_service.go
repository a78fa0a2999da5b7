package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-api/internal/auth"
	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

// LoginLimiter throttles repeated failed logins per username.
type LoginLimiter interface {
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// NoopLoginLimiter never throttles. Used when Redis is not configured.
type NoopLoginLimiter struct{}

func (NoopLoginLimiter) TooManyFailures(context.Context, string) (bool, error) { return false, nil }
func (NoopLoginLimiter) RecordFailure(context.Context, string) error           { return nil }
func (NoopLoginLimiter) Reset(context.Context, string) error                   { return nil }

// AuthService implements registration, login and password changes.
type AuthService struct {
	repo    ports.UserRepository
	tokens  *auth.TokenManager
	limiter LoginLimiter
	logger  zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *auth.TokenManager, limiter LoginLimiter, logger zerolog.Logger) *AuthService {
	if limiter == nil {
		limiter = NoopLoginLimiter{}
	}
	return &AuthService{repo: repo, tokens: tokens, limiter: limiter, logger: logger}
}

// Register creates a credential. Any role other than "admin" is stored as
// a regular user. Username uniqueness is check-then-insert; the store's
// unique index closes the race.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if role != domain.RoleAdmin {
		role = domain.RoleUser
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Str("role", role).Msg("user registered")
	return created, nil
}

// Login verifies the credential and issues an access token. It returns the
// token and the user's role.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, string, error) {
	blocked, err := s.limiter.TooManyFailures(ctx, username)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("login limiter check failed, proceeding")
	} else if blocked {
		return "", "", domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}

	if auth.ComparePassword(user.PasswordHash, password) != nil {
		if recErr := s.limiter.RecordFailure(ctx, username); recErr != nil {
			s.logger.Warn().Err(recErr).Str("username", username).Msg("failed to record login failure")
		}
		return "", "", domain.ErrInvalidCredentials
	}

	if resetErr := s.limiter.Reset(ctx, username); resetErr != nil {
		s.logger.Warn().Err(resetErr).Str("username", username).Msg("failed to reset login failures")
	}

	token, err := s.tokens.Issue(domain.Identity{Username: user.Username, Role: user.Role})
	if err != nil {
		return "", "", err
	}

	return token, user.Role, nil
}

// ChangePassword replaces the caller's password after verifying the old one.
func (s *AuthService) ChangePassword(ctx context.Context, identity domain.Identity, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return domain.ErrMissingFields
	}

	user, err := s.repo.FindByUsername(ctx, identity.Username)
	if err != nil {
		return err
	}

	if auth.ComparePassword(user.PasswordHash, oldPassword) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, identity.Username, hash); err != nil {
		return err
	}

	s.logger.Info().Str("username", identity.Username).Msg("password changed")
	return nil
}
