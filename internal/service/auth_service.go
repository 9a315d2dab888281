package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agencyhub/community-service/internal/auth"
	"github.com/agencyhub/community-service/internal/config"
	"github.com/agencyhub/community-service/internal/domain"
	"github.com/agencyhub/community-service/internal/events"
	"github.com/agencyhub/community-service/internal/repository"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

// AuthService handles registration, login, and profile self-service.
type AuthService struct {
	users      repository.UserRepository
	sessions   *auth.SessionManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Sessions   *auth.SessionManager
	Dispatcher events.Dispatcher
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.SessionConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// Sessions exposes the session manager for middleware wiring.
func (s *AuthService) Sessions() *auth.SessionManager {
	return s.sessions
}

// Register creates a USER-role account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, username, password, displayName string) (*domain.User, string, time.Time, error) {
	username = strings.TrimSpace(username)
	displayName = strings.TrimSpace(displayName)
	if len(username) < 3 {
		return nil, "", time.Time{}, apperrors.NewValidationError("username must be at least 3 characters", nil)
	}
	if len(password) < 6 {
		return nil, "", time.Time{}, apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	if len(displayName) < 2 {
		return nil, "", time.Time{}, apperrors.NewValidationError("display name must be at least 2 characters", nil)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("username already taken", map[string]any{"username": username})
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         domain.RoleUser,
		Level:        1,
		IsOnline:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.sessions.Create(ctx, user.ID, false)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventUserRegistered,
			ActorID: user.ID,
			Payload: events.UserRegisteredPayload{UserID: user.ID, Username: user.Username},
		})
	}
	return user, token, expiresAt, nil
}

// Login verifies credentials and opens a session. The failure message is
// identical for unknown-user and wrong-password.
func (s *AuthService) Login(ctx context.Context, username, password string, remember bool) (*domain.User, string, time.Time, error) {
	if username == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("username and password required", nil)
	}

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid username or password")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid username or password")
	}

	user.IsOnline = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.sessions.Create(ctx, user.ID, remember)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Logout revokes the session and marks the user offline.
func (s *AuthService) Logout(ctx context.Context, user *domain.User, cookieValue string) error {
	user.IsOnline = false
	if err := s.users.Update(ctx, user); err != nil && err != pgx.ErrNoRows {
		return err
	}
	return s.sessions.Revoke(ctx, cookieValue)
}

// ProfileUpdateInput describes self-service profile changes.
type ProfileUpdateInput struct {
	DisplayName *string
	Avatar      *string
}

// UpdateProfile lets a member change their own display name and avatar.
// Role and level are admin-only and go through UserService.
func (s *AuthService) UpdateProfile(ctx context.Context, user *domain.User, input ProfileUpdateInput) (*domain.User, error) {
	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if len(name) < 2 {
			return nil, apperrors.NewValidationError("display name must be at least 2 characters", nil)
		}
		user.DisplayName = name
	}
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}

	if err := s.users.Update(ctx, user); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": user.ID})
		}
		return nil, err
	}
	return user, nil
}
