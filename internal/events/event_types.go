package events

import (
	"time"

	"github.com/agencyhub/community-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered        EventType = "user_registered"
	EventChatGroupCreated      EventType = "chat_group_created"
	EventChatGroupDeleted      EventType = "chat_group_deleted"
	EventChatMessageSent       EventType = "chat_message_sent"
	EventGroupMessagesCleared  EventType = "group_messages_cleared"
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventAnnouncementPublished EventType = "announcement_published"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// ChatGroupCreatedPayload payload.
type ChatGroupCreatedPayload struct {
	GroupID      string      `json:"group_id"`
	Name         string      `json:"name"`
	RequiredRole domain.Role `json:"required_role"`
	IsPrivate    bool        `json:"is_private"`
}

// ChatGroupDeletedPayload payload.
type ChatGroupDeletedPayload struct {
	GroupID         string `json:"group_id"`
	MessagesRemoved int64  `json:"messages_removed"`
}

// ChatMessageSentPayload payload.
type ChatMessageSentPayload struct {
	MessageID   string `json:"message_id"`
	GroupID     string `json:"group_id,omitempty"`
	BodyPreview string `json:"body_preview"`
}

// GroupMessagesClearedPayload payload.
type GroupMessagesClearedPayload struct {
	GroupID string `json:"group_id"`
	Count   int64  `json:"count"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID string `json:"ticket_id"`
	Subject  string `json:"subject"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  string              `json:"ticket_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// AnnouncementPublishedPayload payload.
type AnnouncementPublishedPayload struct {
	AnnouncementID string `json:"announcement_id"`
	Preview        string `json:"preview"`
}
