package repository

import (
	"context"

	"relay-messenger/internal/domain/chat"
	"relay-messenger/internal/domain/message"

	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&chat.Chat{}).
			Where("id = ?", m.ChatID).
			Update("updated_at", m.CreatedAt).Error
	})
	return translateError(err, "message")
}

func (r *PostgresMessageRepository) ListByChat(ctx context.Context, chatID int64, limit, offset int) ([]message.View, error) {
	views := []message.View{}
	err := r.db.WithContext(ctx).
		Table("messages AS m").
		Select("m.*, u.name AS sender_name, u.avatar_url AS sender_avatar").
		Joins("JOIN users u ON u.id = m.sender_id").
		Where("m.chat_id = ?", chatID).
		Order("m.created_at DESC, m.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
