package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencyhub/community-service/internal/domain"
)

// ChatGroupRepository encapsulates chat group persistence.
type ChatGroupRepository interface {
	Create(ctx context.Context, group *domain.ChatGroup) error
	GetByID(ctx context.Context, id string) (*domain.ChatGroup, error)
	List(ctx context.Context) ([]domain.ChatGroup, error)
	FindPrivateByParticipants(ctx context.Context, userA, userB string) (*domain.ChatGroup, error)
	Delete(ctx context.Context, id string) error
}

type chatGroupRepository struct {
	pool *pgxpool.Pool
}

// NewChatGroupRepository instantiates repository.
func NewChatGroupRepository(pool *pgxpool.Pool) ChatGroupRepository {
	return &chatGroupRepository{pool: pool}
}

const chatGroupColumns = `id, name, description, required_role, is_private, participants, created_by, created_at`

func (r *chatGroupRepository) Create(ctx context.Context, group *domain.ChatGroup) error {
	const query = `
        INSERT INTO chat_groups (name, description, required_role, is_private, participants, created_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		group.Name,
		group.Description,
		group.RequiredRole,
		group.IsPrivate,
		group.Participants,
		group.CreatedBy,
	).Scan(&group.ID, &group.CreatedAt)
}

func (r *chatGroupRepository) GetByID(ctx context.Context, id string) (*domain.ChatGroup, error) {
	const query = `SELECT ` + chatGroupColumns + ` FROM chat_groups WHERE id=$1`

	var group domain.ChatGroup
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.RequiredRole,
		&group.IsPrivate,
		&group.Participants,
		&group.CreatedBy,
		&group.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *chatGroupRepository) List(ctx context.Context) ([]domain.ChatGroup, error) {
	const query = `SELECT ` + chatGroupColumns + ` FROM chat_groups ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChatGroups(rows)
}

func (r *chatGroupRepository) FindPrivateByParticipants(ctx context.Context, userA, userB string) (*domain.ChatGroup, error) {
	const query = `SELECT ` + chatGroupColumns + `
        FROM chat_groups
        WHERE is_private AND participants @> ARRAY[$1, $2]::text[]
        ORDER BY created_at ASC
        LIMIT 1`

	var group domain.ChatGroup
	if err := r.pool.QueryRow(ctx, query, userA, userB).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.RequiredRole,
		&group.IsPrivate,
		&group.Participants,
		&group.CreatedBy,
		&group.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *chatGroupRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM chat_groups WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanChatGroups(rows pgx.Rows) ([]domain.ChatGroup, error) {
	var result []domain.ChatGroup
	for rows.Next() {
		var group domain.ChatGroup
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.RequiredRole,
			&group.IsPrivate,
			&group.Participants,
			&group.CreatedBy,
			&group.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, group)
	}
	return result, rows.Err()
}
