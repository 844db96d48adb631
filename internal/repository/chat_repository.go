package repository

import (
	"context"
	"fmt"

	"relay-messenger/internal/domain/chat"
	relay_errors "relay-messenger/pkg/errors"

	"gorm.io/gorm"
)

type PostgresChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Transaction(ctx context.Context, fn func(repo ChatRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresChatRepository{db: tx})
	})
}

// LockPair takes a transaction-scoped advisory lock. Outside a transaction
// the lock is released as soon as the statement finishes.
func (r *PostgresChatRepository) LockPair(ctx context.Context, a, b int64) error {
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", pairLockKey(a, b)).Error
}

const findDirectChatSQL = `
SELECT c.id
FROM chats c
JOIN chat_participants cp ON cp.chat_id = c.id
WHERE c.is_group = FALSE
GROUP BY c.id
HAVING COUNT(*) = 2
   AND COUNT(*) FILTER (WHERE cp.user_id IN (@a, @b)) = 2
ORDER BY c.id
LIMIT 1`

func (r *PostgresChatRepository) FindDirectChat(ctx context.Context, a, b int64) (int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Raw(findDirectChatSQL, map[string]interface{}{"a": a, "b": b}).
		Scan(&ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: chat not found", relay_errors.ErrNotFound)
	}
	return ids[0], nil
}

func (r *PostgresChatRepository) Create(ctx context.Context, c *chat.Chat) error {
	return translateError(r.db.WithContext(ctx).Create(c).Error, "chat")
}

func (r *PostgresChatRepository) AddParticipant(ctx context.Context, p *chat.Participant) error {
	return translateError(r.db.WithContext(ctx).Create(p).Error, "participant")
}

// For 1:1 chats the name, avatar and online flag come from the other
// participant when there is one.
const listSummariesSQL = `
SELECT c.id,
       CASE WHEN o.name IS NULL THEN c.name ELSE o.name END             AS name,
       c.is_group,
       CASE WHEN o.name IS NULL THEN c.avatar_url ELSE o.avatar_url END AS avatar_url,
       c.updated_at,
       lm.content                                                       AS last_message,
       lm.created_at                                                    AS last_message_time,
       (SELECT COUNT(*) FROM messages m
         WHERE m.chat_id = c.id AND m.is_read = FALSE AND m.sender_id <> @user_id) AS unread_count,
       (SELECT COUNT(*) FROM chat_participants p WHERE p.chat_id = c.id)          AS participants_count,
       o.is_online
FROM chats c
JOIN chat_participants cp ON cp.chat_id = c.id AND cp.user_id = @user_id
LEFT JOIN LATERAL (
    SELECT m.content, m.created_at
    FROM messages m
    WHERE m.chat_id = c.id
    ORDER BY m.created_at DESC, m.id DESC
    LIMIT 1
) lm ON TRUE
LEFT JOIN LATERAL (
    SELECT u.name, u.avatar_url, u.is_online
    FROM users u
    JOIN chat_participants op ON op.user_id = u.id
    WHERE op.chat_id = c.id AND u.id <> @user_id AND c.is_group = FALSE
    ORDER BY u.id
    LIMIT 1
) o ON TRUE
ORDER BY c.updated_at DESC, c.id DESC`

func (r *PostgresChatRepository) ListSummaries(ctx context.Context, userID int64) ([]chat.Summary, error) {
	summaries := []chat.Summary{}
	err := r.db.WithContext(ctx).
		Raw(listSummariesSQL, map[string]interface{}{"user_id": userID}).
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
