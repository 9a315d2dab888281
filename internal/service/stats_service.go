package service

import (
	"context"

	"github.com/agencyhub/community-service/internal/domain"
	"github.com/agencyhub/community-service/internal/repository"
)

// StatsService aggregates platform totals for the admin dashboard.
type StatsService struct {
	users    repository.UserRepository
	events   repository.EventRepository
	messages repository.ChatMessageRepository
	tickets  repository.TicketRepository
}

func NewStatsService(users repository.UserRepository, events repository.EventRepository, messages repository.ChatMessageRepository, tickets repository.TicketRepository) *StatsService {
	return &StatsService{users: users, events: events, messages: messages, tickets: tickets}
}

// Totals collects the dashboard counters.
func (s *StatsService) Totals(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return domain.Stats{}, err
	}
	if stats.TotalEvents, err = s.events.Count(ctx); err != nil {
		return domain.Stats{}, err
	}
	if stats.TotalMessages, err = s.messages.Count(ctx); err != nil {
		return domain.Stats{}, err
	}
	if stats.TotalTickets, err = s.tickets.Count(ctx); err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}
