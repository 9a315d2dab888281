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

const recentTicketLimit = 10

// TicketService handles support tickets.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// Create opens a ticket for the requester. New tickets start open.
func (s *TicketService) Create(ctx context.Context, requester *domain.User, subject, message string) (*domain.Ticket, error) {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" {
		return nil, apperrors.NewValidationError("subject is required", nil)
	}
	if message == "" {
		return nil, apperrors.NewValidationError("message is required", nil)
	}

	ticket := &domain.Ticket{
		UserID:  requester.ID,
		Subject: subject,
		Message: message,
		Status:  domain.TicketStatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventTicketCreated,
			ActorID: requester.ID,
			Payload: events.TicketCreatedPayload{
				TicketID: ticket.ID,
				Subject:  ticket.Subject,
			},
		})
	}
	return ticket, nil
}

// List returns every ticket for moderators, the requester's own otherwise.
func (s *TicketService) List(ctx context.Context, requester *domain.User) ([]domain.Ticket, error) {
	if requester.Role.IsModerator() {
		return s.tickets.List(ctx)
	}
	return s.tickets.ListByUser(ctx, requester.ID)
}

// Recent returns the newest tickets for the admin dashboard.
func (s *TicketService) Recent(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.ListRecent(ctx, recentTicketLimit)
}

// UpdateStatus moves a ticket through its lifecycle. Moderators only.
func (s *TicketService) UpdateStatus(ctx context.Context, requester *domain.User, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !requester.Role.IsModerator() {
		return nil, apperrors.NewForbidden("moderator role required")
	}
	if !domain.ValidTicketStatus(string(status)) {
		return nil, apperrors.NewValidationError("invalid ticket status", map[string]any{"status": status})
	}

	existing, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, err
	}

	ticket, err := s.tickets.UpdateStatus(ctx, id, status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, err
	}

	if s.dispatcher != nil && existing.Status != ticket.Status {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventTicketStatusChanged,
			ActorID: requester.ID,
			Payload: events.TicketStatusChangedPayload{
				TicketID:  ticket.ID,
				OldStatus: existing.Status,
				NewStatus: ticket.Status,
			},
		})
	}
	return ticket, nil
}

// Delete removes a ticket. Moderators only.
func (s *TicketService) Delete(ctx context.Context, requester *domain.User, id string) error {
	if !requester.Role.IsModerator() {
		return apperrors.NewForbidden("moderator role required")
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
