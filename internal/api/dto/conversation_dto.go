package dto

import (
	"time"

	"github.com/agencyhub/community-service/internal/domain"
)

// ResolveConversationRequest payload.
type ResolveConversationRequest struct {
	UserID string `json:"user_id"`
}

// ConversationResponse response. Peer is nil when the other account no
// longer exists.
type ConversationResponse struct {
	ID            string        `json:"id"`
	Peer          *UserResponse `json:"peer"`
	LastMessageAt time.Time     `json:"last_message_at"`
	CreatedAt     time.Time     `json:"created_at"`
}

// NewConversationResponse maps a conversation plus the other participant.
func NewConversationResponse(conversation *domain.PrivateConversation, peer *domain.User) ConversationResponse {
	resp := ConversationResponse{
		ID:            conversation.ID,
		LastMessageAt: conversation.LastMessageAt,
		CreatedAt:     conversation.CreatedAt,
	}
	if peer != nil {
		p := NewUserResponse(peer)
		resp.Peer = &p
	}
	return resp
}

// PrivateMessageResponse response.
type PrivateMessageResponse struct {
	ID             string        `json:"id"`
	ConversationID string        `json:"conversation_id"`
	Content        string        `json:"content"`
	Sender         *UserResponse `json:"sender"`
	CreatedAt      time.Time     `json:"created_at"`
}

// NewPrivateMessageResponse maps a private message plus its sender.
func NewPrivateMessageResponse(message *domain.PrivateMessage, sender *domain.User) PrivateMessageResponse {
	resp := PrivateMessageResponse{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		Content:        message.Content,
		CreatedAt:      message.CreatedAt,
	}
	if sender != nil {
		s := NewUserResponse(sender)
		resp.Sender = &s
	}
	return resp
}
