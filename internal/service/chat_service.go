package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/agencyhub/community-service/internal/domain"
	"github.com/agencyhub/community-service/internal/events"
	"github.com/agencyhub/community-service/internal/repository"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

// ChatService coordinates group chat workflows: visibility filtering,
// group lifecycle, and the message lifecycle with its moderation rules.
type ChatService struct {
	groups     repository.ChatGroupRepository
	messages   repository.ChatMessageRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ChatDependencies bundles repositories for the chat service.
type ChatDependencies struct {
	GroupRepo   repository.ChatGroupRepository
	MessageRepo repository.ChatMessageRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewChatService constructs the service.
func NewChatService(deps ChatDependencies) *ChatService {
	return &ChatService{
		groups:     deps.GroupRepo,
		messages:   deps.MessageRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// GroupCreateInput describes public group creation payload.
type GroupCreateInput struct {
	Name         string
	Description  *string
	RequiredRole domain.Role
}

// MessageWithSender pairs a message with its sender's public identity.
// Sender is nil when the account has since been deleted.
type MessageWithSender struct {
	Message domain.ChatMessage
	Sender  *domain.User
}

// ListVisibleGroups returns exactly the groups the requester may see:
// private groups they participate in, and public groups whose required
// rank their role meets. Order follows the underlying store.
func (s *ChatService) ListVisibleGroups(ctx context.Context, requester *domain.User) ([]domain.ChatGroup, error) {
	all, err := s.groups.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]domain.ChatGroup, 0, len(all))
	for _, group := range all {
		if group.VisibleTo(requester.ID, requester.Role) {
			visible = append(visible, group)
		}
	}
	return visible, nil
}

// CreateGroup creates a public group. Moderators and admins only.
func (s *ChatService) CreateGroup(ctx context.Context, requester *domain.User, input GroupCreateInput) (*domain.ChatGroup, error) {
	if !requester.Role.IsModerator() {
		return nil, apperrors.NewForbidden("moderator role required")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("group name required", nil)
	}

	requiredRole := input.RequiredRole
	if requiredRole == "" {
		requiredRole = domain.RoleUser
	}
	if !domain.ValidRole(string(requiredRole)) {
		return nil, apperrors.NewValidationError("unknown required role", map[string]any{"required_role": requiredRole})
	}

	group := &domain.ChatGroup{
		Name:         name,
		Description:  trimmedOrNil(input.Description),
		RequiredRole: requiredRole,
		IsPrivate:    false,
		CreatedBy:    requester.ID,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}

	s.publish(ctx, requester.ID, events.EventChatGroupCreated, events.ChatGroupCreatedPayload{
		GroupID:      group.ID,
		Name:         group.Name,
		RequiredRole: group.RequiredRole,
		IsPrivate:    false,
	})
	return group, nil
}

// StartPrivateGroup resolves or creates a moderator-initiated private group
// with the target user. A second call for the same pair returns the
// existing group instead of inserting a duplicate.
func (s *ChatService) StartPrivateGroup(ctx context.Context, requester *domain.User, targetUserID string) (*domain.ChatGroup, error) {
	if !requester.Role.IsModerator() {
		return nil, apperrors.NewForbidden("moderator role required")
	}
	if targetUserID == "" {
		return nil, apperrors.NewValidationError("target user required", nil)
	}

	target, err := s.users.GetByID(ctx, targetUserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": targetUserID})
		}
		return nil, err
	}

	existing, err := s.groups.FindPrivateByParticipants(ctx, requester.ID, target.ID)
	if err == nil {
		return existing, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	description := "Private chat"
	group := &domain.ChatGroup{
		Name:         fmt.Sprintf("%s - %s", requester.DisplayName, target.DisplayName),
		Description:  &description,
		RequiredRole: domain.RoleUser,
		IsPrivate:    true,
		Participants: []string{requester.ID, target.ID},
		CreatedBy:    requester.ID,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}

	s.publish(ctx, requester.ID, events.EventChatGroupCreated, events.ChatGroupCreatedPayload{
		GroupID:   group.ID,
		Name:      group.Name,
		IsPrivate: true,
	})
	return group, nil
}

// DeleteGroup removes a group and all its messages. Admin only. Messages
// go first so the group is never resolvable with orphaned history.
func (s *ChatService) DeleteGroup(ctx context.Context, requester *domain.User, groupID string) error {
	if !requester.Role.AtLeast(domain.RoleAdmin) {
		return apperrors.NewForbidden("admin role required")
	}

	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("group", map[string]any{"id": groupID})
		}
		return err
	}

	removed, err := s.messages.DeleteByGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, groupID); err != nil {
		return err
	}

	s.publish(ctx, requester.ID, events.EventChatGroupDeleted, events.ChatGroupDeletedPayload{
		GroupID:         groupID,
		MessagesRemoved: removed,
	})
	return nil
}

// ListGroupMessages returns a group's messages ascending by creation time,
// each joined with its sender. The group must be visible to the requester.
func (s *ChatService) ListGroupMessages(ctx context.Context, requester *domain.User, groupID string) ([]MessageWithSender, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("group", map[string]any{"id": groupID})
		}
		return nil, err
	}
	if !group.VisibleTo(requester.ID, requester.Role) {
		return nil, apperrors.NewForbidden("group not accessible")
	}

	messages, err := s.messages.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.joinSenders(ctx, messages)
}

// SendMessage appends a message to a group on behalf of the requester.
// The group must be visible to the requester, same rule as listing.
func (s *ChatService) SendMessage(ctx context.Context, requester *domain.User, groupID, content string) (*domain.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("message content required", nil)
	}

	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("group", map[string]any{"id": groupID})
		}
		return nil, err
	}
	if !group.VisibleTo(requester.ID, requester.Role) {
		return nil, apperrors.NewForbidden("group not accessible")
	}

	message := &domain.ChatMessage{
		GroupID: groupID,
		UserID:  requester.ID,
		Content: content,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	s.publish(ctx, requester.ID, events.EventChatMessageSent, events.ChatMessageSentPayload{
		MessageID:   message.ID,
		GroupID:     groupID,
		BodyPreview: stringPreview(content, 120),
	})
	return message, nil
}

// EditMessage replaces a message's content. Sender only, for every role;
// the original timestamp is preserved.
func (s *ChatService) EditMessage(ctx context.Context, requester *domain.User, messageID, content string) (*domain.ChatMessage, error) {
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

// DeleteMessage removes a message. Allowed for the sender and, as the
// moderation override, for MOD and ADMIN.
func (s *ChatService) DeleteMessage(ctx context.Context, requester *domain.User, messageID string) error {
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

// ClearGroupMessages removes every message in a group and returns the
// actual affected-row count. Moderators and admins only.
func (s *ChatService) ClearGroupMessages(ctx context.Context, requester *domain.User, groupID string) (int64, error) {
	if !requester.Role.IsModerator() {
		return 0, apperrors.NewForbidden("moderator role required")
	}

	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.NewNotFound("group", map[string]any{"id": groupID})
		}
		return 0, err
	}

	count, err := s.messages.DeleteByGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, requester.ID, events.EventGroupMessagesCleared, events.GroupMessagesClearedPayload{
		GroupID: groupID,
		Count:   count,
	})
	return count, nil
}

func (s *ChatService) joinSenders(ctx context.Context, messages []domain.ChatMessage) ([]MessageWithSender, error) {
	result := make([]MessageWithSender, 0, len(messages))
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
		result = append(result, MessageWithSender{Message: message, Sender: sender})
	}
	return result, nil
}

func (s *ChatService) publish(ctx context.Context, actorID string, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    eventType,
		ActorID: actorID,
		Payload: payload,
	})
}
