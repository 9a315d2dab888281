package domain

import "time"

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ValidTicketStatus reports whether s is a defined status.
func ValidTicketStatus(s string) bool {
	switch TicketStatus(s) {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket is a member-submitted support request. Owners see their own
// tickets; moderators see and manage all of them.
type Ticket struct {
	ID        string
	UserID    string
	Subject   string
	Message   string
	Status    TicketStatus
	CreatedAt time.Time
}
