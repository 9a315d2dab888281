package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agencyhub/community-service/internal/api/dto"
	"github.com/agencyhub/community-service/internal/auth"
	"github.com/agencyhub/community-service/internal/service"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

// ConversationsHandler exposes one-to-one messaging endpoints.
type ConversationsHandler struct {
	conversations *service.ConversationService
}

// NewConversationsHandler constructs handler.
func NewConversationsHandler(conversationService *service.ConversationService) *ConversationsHandler {
	return &ConversationsHandler{conversations: conversationService}
}

// Resolve handles POST /api/conversations. Calling it twice for the same
// pair returns the same conversation.
func (h *ConversationsHandler) Resolve(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ResolveConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("user_id required", nil)
	}

	conversation, err := h.conversations.Resolve(c.Context(), requester, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewConversationResponse(conversation, nil)})
}

// List handles GET /api/conversations.
func (h *ConversationsHandler) List(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	conversations, err := h.conversations.ListConversations(c.Context(), requester)
	if err != nil {
		return err
	}
	items := make([]dto.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		items = append(items, dto.NewConversationResponse(&conversations[i].Conversation, conversations[i].Peer))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListMessages handles GET /api/conversations/:id/messages.
func (h *ConversationsHandler) ListMessages(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	messages, err := h.conversations.ListMessages(c.Context(), requester, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.PrivateMessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, dto.NewPrivateMessageResponse(&messages[i].Message, messages[i].Sender))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SendMessage handles POST /api/conversations/:id/messages.
func (h *ConversationsHandler) SendMessage(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message, err := h.conversations.SendMessage(c.Context(), requester, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPrivateMessageResponse(message, requester)})
}

// EditMessage handles PATCH /api/conversations/messages/:id.
func (h *ConversationsHandler) EditMessage(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.EditMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message, err := h.conversations.EditMessage(c.Context(), requester, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPrivateMessageResponse(message, requester)})
}

// DeleteMessage handles DELETE /api/conversations/messages/:id.
func (h *ConversationsHandler) DeleteMessage(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.conversations.DeleteMessage(c.Context(), requester, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
