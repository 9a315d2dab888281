package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/agencyhub/community-service/internal/auth"
	"github.com/agencyhub/community-service/internal/domain"
	"github.com/agencyhub/community-service/internal/repository"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

// UserService covers the member directory and admin user management.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// List returns the full member directory. Any authenticated member may call it.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// AdminCreateInput describes an admin-created account.
type AdminCreateInput struct {
	Username    string
	Password    string
	DisplayName string
	Role        domain.Role
	Level       int
}

// AdminCreate creates an account with an explicit role and level.
func (s *UserService) AdminCreate(ctx context.Context, input AdminCreateInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if len(input.Username) < 3 {
		return nil, apperrors.NewValidationError("username must be at least 3 characters", nil)
	}
	if len(input.Password) < 6 {
		return nil, apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	if input.DisplayName == "" {
		input.DisplayName = input.Username
	}
	if !domain.ValidRole(string(input.Role)) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}
	if input.Level < 1 || input.Level > 100 {
		return nil, apperrors.NewValidationError("level must be between 1 and 100", map[string]any{"level": input.Level})
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict("username already taken", map[string]any{"username": input.Username})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		DisplayName:  input.DisplayName,
		Role:         input.Role,
		Level:        input.Level,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AdminUpdateInput carries the fields an admin may change on a member.
type AdminUpdateInput struct {
	DisplayName *string
	Role        *domain.Role
	Level       *int
	Avatar      *string
}

// AdminUpdate edits a member's role, level, display name, or avatar.
func (s *UserService) AdminUpdate(ctx context.Context, id string, input AdminUpdateInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if len(name) < 2 {
			return nil, apperrors.NewValidationError("display name must be at least 2 characters", nil)
		}
		user.DisplayName = name
	}
	if input.Role != nil {
		if !domain.ValidRole(string(*input.Role)) {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *input.Role})
		}
		user.Role = *input.Role
	}
	if input.Level != nil {
		if *input.Level < 1 || *input.Level > 100 {
			return nil, apperrors.NewValidationError("level must be between 1 and 100", map[string]any{"level": *input.Level})
		}
		user.Level = *input.Level
	}
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}

	if err := s.users.Update(ctx, user); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// AdminDelete removes a member. Admins cannot delete their own account.
func (s *UserService) AdminDelete(ctx context.Context, requester *domain.User, id string) error {
	if requester.ID == id {
		return apperrors.NewValidationError("cannot delete your own account", nil)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
