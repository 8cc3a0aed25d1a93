package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

// MessageRepository handles club message boards
type MessageRepository struct {
	pool db.DBTX
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(conn db.DBTX) *MessageRepository {
	return &MessageRepository{pool: conn}
}

func (r *MessageRepository) conn(ctx context.Context) db.DBTX {
	return db.Executor(ctx, r.pool)
}

// Create posts a message
func (r *MessageRepository) Create(ctx context.Context, m *models.Message) error {
	sql, args, err := psql.Insert("messages").
		Columns("sender_id", "club_id", "content").
		Values(m.SenderID, m.ClubID, m.Content).
		Suffix("RETURNING id, created_at, is_read").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt, &m.IsRead); err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}
	return nil
}

// GetByID retrieves a message with the sender's username
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	sql, args, err := psql.Select("m.id", "m.sender_id", "m.club_id", "m.content", "m.created_at", "m.is_read", "u.username").
		From("messages m").
		Join("users u ON u.id = m.sender_id").
		Where(squirrel.Eq{"m.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var m models.Message
	err = r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&m.ID, &m.SenderID, &m.ClubID, &m.Content, &m.CreatedAt, &m.IsRead, &m.SenderUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("error fetching message: %w", err)
	}
	return &m, nil
}

// Delete removes a message
func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, "DELETE FROM messages WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}

// ListByClub returns a page of a club's messages, newest first, and the total count
func (r *MessageRepository) ListByClub(ctx context.Context, clubID int64, offset uint64, limit int) ([]*models.Message, int64, error) {
	query := psql.Select("m.id", "m.sender_id", "m.club_id", "m.content", "m.created_at", "m.is_read", "u.username",
		"COUNT(*) OVER() AS total_count").
		From("messages m").
		Join("users u ON u.id = m.sender_id").
		Where(squirrel.Eq{"m.club_id": clubID}).
		OrderBy("m.created_at DESC", "m.id DESC").
		Offset(offset)
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var total int64
	messages := []*models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ClubID, &m.Content, &m.CreatedAt, &m.IsRead, &m.SenderUsername, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, &m)
	}
	return messages, total, rows.Err()
}

// ListRecentBySender returns a user's newest messages across all clubs
func (r *MessageRepository) ListRecentBySender(ctx context.Context, senderID int64, limit int) ([]*models.Message, error) {
	sql, args, err := psql.Select("m.id", "m.sender_id", "m.club_id", "m.content", "m.created_at", "m.is_read", "u.username").
		From("messages m").
		Join("users u ON u.id = m.sender_id").
		Where(squirrel.Eq{"m.sender_id": senderID}).
		OrderBy("m.created_at DESC", "m.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing sender messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ClubID, &m.Content, &m.CreatedAt, &m.IsRead, &m.SenderUsername); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
