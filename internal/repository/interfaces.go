package repository

import (
	"context"
	"time"

	"relay-messenger/internal/domain/chat"
	"relay-messenger/internal/domain/message"
	"relay-messenger/internal/domain/notification"
	"relay-messenger/internal/domain/settings"
	"relay-messenger/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id int64) (user.User, error)
	GetByPhone(ctx context.Context, phone string) (user.User, error)
	MarkOnline(ctx context.Context, id int64, at time.Time) error
	UpdateProfile(ctx context.Context, id int64, patch user.ProfilePatch) (user.User, error)
	ListExcept(ctx context.Context, id int64) ([]user.User, error)
}

type ChatRepository interface {
	// Transaction runs fn against a repository bound to one database transaction.
	Transaction(ctx context.Context, fn func(repo ChatRepository) error) error
	// LockPair serializes 1:1 chat creation for the unordered pair (a, b)
	// until the surrounding transaction ends.
	LockPair(ctx context.Context, a, b int64) error
	FindDirectChat(ctx context.Context, a, b int64) (int64, error)
	Create(ctx context.Context, c *chat.Chat) error
	AddParticipant(ctx context.Context, p *chat.Participant) error
	ListSummaries(ctx context.Context, userID int64) ([]chat.Summary, error)
}

type MessageRepository interface {
	// Create inserts m and bumps its chat's updated_at atomically.
	Create(ctx context.Context, m *message.Message) error
	// ListByChat returns a page of messages newest first.
	ListByChat(ctx context.Context, chatID int64, limit, offset int) ([]message.View, error)
}

type NotificationRepository interface {
	Upsert(ctx context.Context, sub *notification.PushSubscription) error
	ListByUser(ctx context.Context, userID int64) ([]notification.PushSubscription, error)
}

type SettingsRepository interface {
	GetOrCreate(ctx context.Context, userID int64) (settings.UserSettings, error)
	Upsert(ctx context.Context, userID int64, patch settings.Patch) (settings.UserSettings, error)
}
