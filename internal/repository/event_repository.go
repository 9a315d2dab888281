package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencyhub/community-service/internal/domain"
)

// EventRepository encapsulates event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Count(ctx context.Context) (int64, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, title, description, agency_name, agency_logo,
        participant1_name, participant1_avatar, participant2_name, participant2_avatar,
        participant_count, participants, scheduled_at, is_live, created_by, created_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (title, description, agency_name, agency_logo,
            participant1_name, participant1_avatar, participant2_name, participant2_avatar,
            participant_count, participants, scheduled_at, is_live, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.AgencyName,
		event.AgencyLogo,
		event.Participant1Name,
		event.Participant1Avatar,
		event.Participant2Name,
		event.Participant2Avatar,
		event.ParticipantCount,
		event.Participants,
		event.ScheduledAt,
		event.IsLive,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id=$1`

	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.AgencyName,
		&event.AgencyLogo,
		&event.Participant1Name,
		&event.Participant1Avatar,
		&event.Participant2Name,
		&event.Participant2Avatar,
		&event.ParticipantCount,
		&event.Participants,
		&event.ScheduledAt,
		&event.IsLive,
		&event.CreatedBy,
		&event.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events ORDER BY scheduled_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.AgencyName,
			&event.AgencyLogo,
			&event.Participant1Name,
			&event.Participant1Avatar,
			&event.Participant2Name,
			&event.Participant2Avatar,
			&event.ParticipantCount,
			&event.Participants,
			&event.ScheduledAt,
			&event.IsLive,
			&event.CreatedBy,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func (r *eventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	return count, err
}
