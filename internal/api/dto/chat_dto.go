package dto

import (
	"time"

	"github.com/agencyhub/community-service/internal/domain"
)

// CreateGroupRequest payload.
type CreateGroupRequest struct {
	Name         string      `json:"name"`
	Description  *string     `json:"description"`
	RequiredRole domain.Role `json:"required_role"`
}

// StartPrivateGroupRequest payload.
type StartPrivateGroupRequest struct {
	UserID string `json:"user_id"`
}

// SendMessageRequest payload for group and private messages.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// EditMessageRequest payload.
type EditMessageRequest struct {
	Content string `json:"content"`
}

// GroupResponse response.
type GroupResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  *string     `json:"description"`
	RequiredRole domain.Role `json:"required_role"`
	IsPrivate    bool        `json:"is_private"`
	Participants []string    `json:"participants,omitempty"`
	CreatedBy    string      `json:"created_by"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewGroupResponse maps a chat group.
func NewGroupResponse(group *domain.ChatGroup) GroupResponse {
	return GroupResponse{
		ID:           group.ID,
		Name:         group.Name,
		Description:  group.Description,
		RequiredRole: group.RequiredRole,
		IsPrivate:    group.IsPrivate,
		Participants: group.Participants,
		CreatedBy:    group.CreatedBy,
		CreatedAt:    group.CreatedAt,
	}
}

// ChatMessageResponse response. Sender is nil when the account has been
// deleted since the message was posted.
type ChatMessageResponse struct {
	ID        string        `json:"id"`
	GroupID   string        `json:"group_id"`
	Content   string        `json:"content"`
	Sender    *UserResponse `json:"sender"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewChatMessageResponse maps a message plus its sender.
func NewChatMessageResponse(message *domain.ChatMessage, sender *domain.User) ChatMessageResponse {
	resp := ChatMessageResponse{
		ID:        message.ID,
		GroupID:   message.GroupID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
	if sender != nil {
		s := NewUserResponse(sender)
		resp.Sender = &s
	}
	return resp
}
