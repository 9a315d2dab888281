package dto

import (
	"time"

	"github.com/agencyhub/community-service/internal/domain"
)

// UserResponse is the public view of a member. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	DisplayName string      `json:"display_name"`
	Role        domain.Role `json:"role"`
	Avatar      *string     `json:"avatar"`
	Level       int         `json:"level"`
	IsOnline    bool        `json:"is_online"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewUserResponse maps a domain user onto its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		Avatar:      user.Avatar,
		Level:       user.Level,
		IsOnline:    user.IsOnline,
		CreatedAt:   user.CreatedAt,
	}
}

// AdminCreateUserRequest payload for admin-created accounts.
type AdminCreateUserRequest struct {
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	DisplayName string      `json:"display_name"`
	Role        domain.Role `json:"role"`
	Level       int         `json:"level"`
}

// AdminUpdateUserRequest payload for admin member edits.
type AdminUpdateUserRequest struct {
	DisplayName *string      `json:"display_name"`
	Role        *domain.Role `json:"role"`
	Level       *int         `json:"level"`
	Avatar      *string      `json:"avatar"`
}
