package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agencyhub/community-service/internal/api/dto"
	"github.com/agencyhub/community-service/internal/auth"
	"github.com/agencyhub/community-service/internal/service"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

// ChatHandler exposes group chat endpoints.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chatService}
}

// ListGroups handles GET /api/chat/groups.
func (h *ChatHandler) ListGroups(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	groups, err := h.chat.ListVisibleGroups(c.Context(), requester)
	if err != nil {
		return err
	}
	items := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		items = append(items, dto.NewGroupResponse(&groups[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateGroup handles POST /api/chat/groups.
func (h *ChatHandler) CreateGroup(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	group, err := h.chat.CreateGroup(c.Context(), requester, service.GroupCreateInput{
		Name:         req.Name,
		Description:  req.Description,
		RequiredRole: req.RequiredRole,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewGroupResponse(group)})
}

// StartPrivateGroup handles POST /api/chat/groups/private.
func (h *ChatHandler) StartPrivateGroup(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.StartPrivateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("user_id required", nil)
	}

	group, err := h.chat.StartPrivateGroup(c.Context(), requester, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewGroupResponse(group)})
}

// DeleteGroup handles DELETE /api/chat/groups/:id.
func (h *ChatHandler) DeleteGroup(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.chat.DeleteGroup(c.Context(), requester, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListMessages handles GET /api/chat/groups/:id/messages.
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	messages, err := h.chat.ListGroupMessages(c.Context(), requester, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, dto.NewChatMessageResponse(&messages[i].Message, messages[i].Sender))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SendMessage handles POST /api/chat/groups/:id/messages.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message, err := h.chat.SendMessage(c.Context(), requester, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewChatMessageResponse(message, requester)})
}

// EditMessage handles PATCH /api/chat/messages/:id.
func (h *ChatHandler) EditMessage(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.EditMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message, err := h.chat.EditMessage(c.Context(), requester, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewChatMessageResponse(message, requester)})
}

// DeleteMessage handles DELETE /api/chat/messages/:id.
func (h *ChatHandler) DeleteMessage(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.chat.DeleteMessage(c.Context(), requester, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ClearMessages handles DELETE /api/chat/groups/:id/messages.
func (h *ChatHandler) ClearMessages(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	count, err := h.chat.ClearGroupMessages(c.Context(), requester, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"cleared": count}})
}
