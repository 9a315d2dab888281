package dto

import (
	"time"

	"github.com/agencyhub/community-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// TicketResponse response.
type TicketResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Subject   string              `json:"subject"`
	Message   string              `json:"message"`
	Status    domain.TicketStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}

// NewTicketResponse maps a ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:        ticket.ID,
		UserID:    ticket.UserID,
		Subject:   ticket.Subject,
		Message:   ticket.Message,
		Status:    ticket.Status,
		CreatedAt: ticket.CreatedAt,
	}
}
