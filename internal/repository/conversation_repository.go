package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencyhub/community-service/internal/domain"
)

// ConversationRepository encapsulates 1:1 conversation persistence.
type ConversationRepository interface {
	// Insert creates a conversation row. A unique index over the normalized
	// participant pair backs it: when a concurrent insert already created the
	// row, Insert returns pgx.ErrNoRows and the caller re-fetches by pair.
	Insert(ctx context.Context, conv *domain.PrivateConversation) error
	FindByPair(ctx context.Context, userA, userB string) (*domain.PrivateConversation, error)
	GetByID(ctx context.Context, id string) (*domain.PrivateConversation, error)
	ListByUser(ctx context.Context, userID string) ([]domain.PrivateConversation, error)
	TouchLastMessage(ctx context.Context, id string) error
}

type conversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository instantiates repository.
func NewConversationRepository(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepository{pool: pool}
}

const conversationColumns = `id, participant1_id, participant2_id, last_message_at, created_at`

func (r *conversationRepository) Insert(ctx context.Context, conv *domain.PrivateConversation) error {
	const query = `
        INSERT INTO private_conversations (participant1_id, participant2_id)
        VALUES ($1, $2)
        ON CONFLICT ((LEAST(participant1_id, participant2_id)), (GREATEST(participant1_id, participant2_id)))
        DO NOTHING
        RETURNING id, last_message_at, created_at`

	return r.pool.QueryRow(ctx, query,
		conv.Participant1ID,
		conv.Participant2ID,
	).Scan(&conv.ID, &conv.LastMessageAt, &conv.CreatedAt)
}

func (r *conversationRepository) FindByPair(ctx context.Context, userA, userB string) (*domain.PrivateConversation, error) {
	const query = `SELECT ` + conversationColumns + `
        FROM private_conversations
        WHERE (participant1_id=$1 AND participant2_id=$2)
           OR (participant1_id=$2 AND participant2_id=$1)
        LIMIT 1`

	return r.fetchSingle(ctx, query, userA, userB)
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*domain.PrivateConversation, error) {
	const query = `SELECT ` + conversationColumns + ` FROM private_conversations WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *conversationRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.PrivateConversation, error) {
	var conv domain.PrivateConversation
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&conv.ID,
		&conv.Participant1ID,
		&conv.Participant2ID,
		&conv.LastMessageAt,
		&conv.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID string) ([]domain.PrivateConversation, error) {
	const query = `SELECT ` + conversationColumns + `
        FROM private_conversations
        WHERE participant1_id=$1 OR participant2_id=$1
        ORDER BY last_message_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PrivateConversation
	for rows.Next() {
		var conv domain.PrivateConversation
		if err := rows.Scan(
			&conv.ID,
			&conv.Participant1ID,
			&conv.Participant2ID,
			&conv.LastMessageAt,
			&conv.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, conv)
	}
	return result, rows.Err()
}

func (r *conversationRepository) TouchLastMessage(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE private_conversations SET last_message_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// PrivateMessageRepository encapsulates 1:1 message persistence.
type PrivateMessageRepository interface {
	Create(ctx context.Context, message *domain.PrivateMessage) error
	GetByID(ctx context.Context, id string) (*domain.PrivateMessage, error)
	ListByConversation(ctx context.Context, conversationID string) ([]domain.PrivateMessage, error)
	UpdateContent(ctx context.Context, id, content string) (*domain.PrivateMessage, error)
	Delete(ctx context.Context, id string) error
}

type privateMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPrivateMessageRepository instantiates repository.
func NewPrivateMessageRepository(pool *pgxpool.Pool) PrivateMessageRepository {
	return &privateMessageRepository{pool: pool}
}

func (r *privateMessageRepository) Create(ctx context.Context, message *domain.PrivateMessage) error {
	const query = `
        INSERT INTO private_messages (conversation_id, user_id, content)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		message.ConversationID,
		message.UserID,
		message.Content,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *privateMessageRepository) GetByID(ctx context.Context, id string) (*domain.PrivateMessage, error) {
	const query = `
        SELECT id, conversation_id, user_id, content, created_at
        FROM private_messages WHERE id=$1`

	var message domain.PrivateMessage
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&message.ID,
		&message.ConversationID,
		&message.UserID,
		&message.Content,
		&message.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *privateMessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]domain.PrivateMessage, error) {
	const query = `
        SELECT id, conversation_id, user_id, content, created_at
        FROM private_messages WHERE conversation_id=$1
        ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PrivateMessage
	for rows.Next() {
		var message domain.PrivateMessage
		if err := rows.Scan(
			&message.ID,
			&message.ConversationID,
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

func (r *privateMessageRepository) UpdateContent(ctx context.Context, id, content string) (*domain.PrivateMessage, error) {
	const query = `
        UPDATE private_messages SET content=$1 WHERE id=$2
        RETURNING id, conversation_id, user_id, content, created_at`

	var message domain.PrivateMessage
	if err := r.pool.QueryRow(ctx, query, content, id).Scan(
		&message.ID,
		&message.ConversationID,
		&message.UserID,
		&message.Content,
		&message.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *privateMessageRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM private_messages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
