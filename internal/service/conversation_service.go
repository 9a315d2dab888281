package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/agencyhub/community-service/internal/domain"
	"github.com/agencyhub/community-service/internal/events"
	"github.com/agencyhub/community-service/internal/repository"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

// ConversationService manages 1:1 conversations between members. This is
// the user-initiated channel; moderator-initiated private groups live in
// ChatService and the two mechanisms stay deliberately separate.
type ConversationService struct {
	conversations repository.ConversationRepository
	messages      repository.PrivateMessageRepository
	users         repository.UserRepository
	dispatcher    events.Dispatcher
}

// ConversationDependencies bundles repositories for the service.
type ConversationDependencies struct {
	ConversationRepo repository.ConversationRepository
	MessageRepo      repository.PrivateMessageRepository
	UserRepo         repository.UserRepository
	Dispatcher       events.Dispatcher
}

// NewConversationService constructs the service.
func NewConversationService(deps ConversationDependencies) *ConversationService {
	return &ConversationService{
		conversations: deps.ConversationRepo,
		messages:      deps.MessageRepo,
		users:         deps.UserRepo,
		dispatcher:    deps.Dispatcher,
	}
}

// ConversationWithPeer pairs a conversation with the other participant's
// public identity. Peer is nil when that account no longer exists.
type ConversationWithPeer struct {
	Conversation domain.PrivateConversation
	Peer         *domain.User
}

// PrivateMessageWithSender pairs a message with its sender.
type PrivateMessageWithSender struct {
	Message domain.PrivateMessage
	Sender  *domain.User
}

// Resolve finds or lazily creates the conversation for the unordered pair
// (requester, target). The lookup checks both orderings, so Resolve(A,B)
// and Resolve(B,A) return the same row. A unique index on the normalized
// pair backstops concurrent first-contact races: when the insert loses,
// the winner's row is fetched instead.
func (s *ConversationService) Resolve(ctx context.Context, requester *domain.User, targetUserID string) (*domain.PrivateConversation, error) {
	if targetUserID == "" {
		return nil, apperrors.NewValidationError("target user required", nil)
	}
	if targetUserID == requester.ID {
		return nil, apperrors.NewValidationError("cannot start a conversation with yourself", nil)
	}

	if _, err := s.users.GetByID(ctx, targetUserID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": targetUserID})
		}
		return nil, err
	}

	existing, err := s.conversations.FindByPair(ctx, requester.ID, targetUserID)
	if err == nil {
		return existing, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	conv := &domain.PrivateConversation{
		Participant1ID: requester.ID,
		Participant2ID: targetUserID,
	}
	err = s.conversations.Insert(ctx, conv)
	if err == nil {
		return conv, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}
	// Lost the insert race; the row exists now.
	return s.conversations.FindByPair(ctx, requester.ID, targetUserID)
}

// ListConversations returns the requester's inbox ordered by most recent
// activity, each entry joined with the peer's identity.
func (s *ConversationService) ListConversations(ctx context.Context, requester *domain.User) ([]ConversationWithPeer, error) {
	conversations, err := s.conversations.ListByUser(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	result := make([]ConversationWithPeer, 0, len(conversations))
	for _, conv := range conversations {
		peer, err := s.users.GetByID(ctx, conv.OtherParticipant(requester.ID))
		if err != nil {
			if err != pgx.ErrNoRows {
				return nil, err
			}
			peer = nil
		}
		result = append(result, ConversationWithPeer{Conversation: conv, Peer: peer})
	}
	return result, nil
}

// ListMessages returns a conversation's messages ascending by creation
// time. Participants only.
func (s *ConversationService) ListMessages(ctx context.Context, requester *domain.User, conversationID string) ([]PrivateMessageWithSender, error) {
	conv, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Involves(requester.ID) {
		return nil, apperrors.NewForbidden("not a participant")
	}

	messages, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	result := make([]PrivateMessageWithSender, 0, len(messages))
	cache := make(map[string]*domain.User)
	for _, message := range messages {
		sender, seen := cache[message.UserID]
		if !seen {
			loaded, err := s.users.GetByID(ctx, message.UserID)
			if err != nil {
				if err != pgx.ErrNoRows {
					return nil, err
				}
				loaded = nil
			}
			cache[message.UserID] = loaded
			sender = loaded
		}
		result = append(result, PrivateMessageWithSender{Message: message, Sender: sender})
	}
	return result, nil
}

// SendMessage appends a message to a conversation and bumps its
// last-activity timestamp for inbox ordering. Participants only.
func (s *ConversationService) SendMessage(ctx context.Context, requester *domain.User, conversationID, content string) (*domain.PrivateMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("message content required", nil)
	}

	conv, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Involves(requester.ID) {
		return nil, apperrors.NewForbidden("not a participant")
	}

	message := &domain.PrivateMessage{
		ConversationID: conversationID,
		UserID:         requester.ID,
		Content:        content,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	if err := s.conversations.TouchLastMessage(ctx, conversationID); err != nil {
		return nil, err
	}

	s.publish(ctx, requester.ID, events.EventChatMessageSent, events.ChatMessageSentPayload{
		MessageID:   message.ID,
		BodyPreview: stringPreview(content, 120),
	})
	return message, nil
}

// EditMessage replaces a private message's content. Sender only.
func (s *ConversationService) EditMessage(ctx context.Context, requester *domain.User, messageID, content string) (*domain.PrivateMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("message content required", nil)
	}

	message, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("message", map[string]any{"id": messageID})
		}
		return nil, err
	}
	if !message.CanEdit(requester.ID) {
		return nil, apperrors.NewForbidden("only the sender may edit a message")
	}
	return s.messages.UpdateContent(ctx, messageID, content)
}

// DeleteMessage removes a private message. Sender or moderator.
func (s *ConversationService) DeleteMessage(ctx context.Context, requester *domain.User, messageID string) error {
	message, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("message", map[string]any{"id": messageID})
		}
		return err
	}
	if !message.CanDelete(requester.ID, requester.Role) {
		return apperrors.NewForbidden("not allowed to delete this message")
	}
	return s.messages.Delete(ctx, messageID)
}

func (s *ConversationService) getConversation(ctx context.Context, id string) (*domain.PrivateConversation, error) {
	conv, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("conversation", map[string]any{"id": id})
		}
		return nil, err
	}
	return conv, nil
}

func (s *ConversationService) publish(ctx context.Context, actorID string, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    eventType,
		ActorID: actorID,
		Payload: payload,
	})
}
