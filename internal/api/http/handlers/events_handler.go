package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agencyhub/community-service/internal/api/dto"
	"github.com/agencyhub/community-service/internal/auth"
	"github.com/agencyhub/community-service/internal/service"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

// EventsHandler exposes the agency events endpoints.
type EventsHandler struct {
	events *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{events: eventService}
}

// List handles GET /api/events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	events, err := h.events.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, dto.NewEventResponse(&events[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /api/events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	event, err := h.events.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Create handles POST /api/events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	event, err := h.events.Create(c.Context(), requester, service.CreateEventInput{
		Title:              req.Title,
		Description:        req.Description,
		AgencyName:         req.AgencyName,
		AgencyLogo:         req.AgencyLogo,
		Participant1Name:   req.Participant1Name,
		Participant1Avatar: req.Participant1Avatar,
		Participant2Name:   req.Participant2Name,
		Participant2Avatar: req.Participant2Avatar,
		ParticipantCount:   req.ParticipantCount,
		Participants:       req.Participants,
		ScheduledAt:        req.ScheduledAt,
		IsLive:             req.IsLive,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}
