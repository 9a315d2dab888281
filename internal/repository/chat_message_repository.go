package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencyhub/community-service/internal/domain"
)

// ChatMessageRepository encapsulates group message persistence.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *domain.ChatMessage) error
	GetByID(ctx context.Context, id string) (*domain.ChatMessage, error)
	ListByGroup(ctx context.Context, groupID string) ([]domain.ChatMessage, error)
	UpdateContent(ctx context.Context, id, content string) (*domain.ChatMessage, error)
	Delete(ctx context.Context, id string) error
	DeleteByGroup(ctx context.Context, groupID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type chatMessageRepository struct {
	pool *pgxpool.Pool
}

// NewChatMessageRepository instantiates repository.
func NewChatMessageRepository(pool *pgxpool.Pool) ChatMessageRepository {
	return &chatMessageRepository{pool: pool}
}

func (r *chatMessageRepository) Create(ctx context.Context, message *domain.ChatMessage) error {
	const query = `
        INSERT INTO chat_messages (group_id, user_id, content)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		message.GroupID,
		message.UserID,
		message.Content,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *chatMessageRepository) GetByID(ctx context.Context, id string) (*domain.ChatMessage, error) {
	const query = `
        SELECT id, group_id, user_id, content, created_at
        FROM chat_messages WHERE id=$1`

	var message domain.ChatMessage
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&message.ID,
		&message.GroupID,
		&message.UserID,
		&message.Content,
		&message.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *chatMessageRepository) ListByGroup(ctx context.Context, groupID string) ([]domain.ChatMessage, error) {
	const query = `
        SELECT id, group_id, user_id, content, created_at
        FROM chat_messages WHERE group_id=$1
        ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatMessage
	for rows.Next() {
		var message domain.ChatMessage
		if err := rows.Scan(
			&message.ID,
			&message.GroupID,
			&message.UserID,
			&message.Content,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, message)
	}
	return result, rows.Err()
}

func (r *chatMessageRepository) UpdateContent(ctx context.Context, id, content string) (*domain.ChatMessage, error) {
	const query = `
        UPDATE chat_messages SET content=$1 WHERE id=$2
        RETURNING id, group_id, user_id, content, created_at`

	var message domain.ChatMessage
	if err := r.pool.QueryRow(ctx, query, content, id).Scan(
		&message.ID,
		&message.GroupID,
		&message.UserID,
		&message.Content,
		&message.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *chatMessageRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM chat_messages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *chatMessageRepository) DeleteByGroup(ctx context.Context, groupID string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM chat_messages WHERE group_id=$1`, groupID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *chatMessageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM chat_messages`).Scan(&count)
	return count, err
}
