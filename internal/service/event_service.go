package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agencyhub/community-service/internal/domain"
	"github.com/agencyhub/community-service/internal/repository"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

// EventService handles the agency events page.
type EventService struct {
	events repository.EventRepository
}

func NewEventService(events repository.EventRepository) *EventService {
	return &EventService{events: events}
}

// List returns all events ordered by schedule.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx)
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("event", map[string]any{"id": id})
		}
		return nil, err
	}
	return event, nil
}

// CreateEventInput describes a new event.
type CreateEventInput struct {
	Title              string
	Description        *string
	AgencyName         string
	AgencyLogo         *string
	Participant1Name   *string
	Participant1Avatar *string
	Participant2Name   *string
	Participant2Avatar *string
	ParticipantCount   int
	Participants       []string
	ScheduledAt        time.Time
	IsLive             bool
}

// Create publishes an event. Moderators only.
func (s *EventService) Create(ctx context.Context, requester *domain.User, input CreateEventInput) (*domain.Event, error) {
	if !requester.Role.IsModerator() {
		return nil, apperrors.NewForbidden("moderator role required")
	}
	input.Title = strings.TrimSpace(input.Title)
	input.AgencyName = strings.TrimSpace(input.AgencyName)
	if input.Title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if input.AgencyName == "" {
		return nil, apperrors.NewValidationError("agency name is required", nil)
	}
	if input.ScheduledAt.IsZero() {
		return nil, apperrors.NewValidationError("scheduledAt is required", nil)
	}
	if input.ParticipantCount < 0 {
		return nil, apperrors.NewValidationError("participant count cannot be negative", nil)
	}

	event := &domain.Event{
		Title:              input.Title,
		Description:        trimmedOrNil(input.Description),
		AgencyName:         input.AgencyName,
		AgencyLogo:         input.AgencyLogo,
		Participant1Name:   input.Participant1Name,
		Participant1Avatar: input.Participant1Avatar,
		Participant2Name:   input.Participant2Name,
		Participant2Avatar: input.Participant2Avatar,
		ParticipantCount:   input.ParticipantCount,
		Participants:       input.Participants,
		ScheduledAt:        input.ScheduledAt,
		IsLive:             input.IsLive,
		CreatedBy:          requester.ID,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
