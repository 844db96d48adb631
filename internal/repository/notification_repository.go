package repository

import (
	"context"
	"sync"

	"relay-messenger/internal/domain/notification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const createPushSubscriptionsSQL = `
CREATE TABLE IF NOT EXISTS push_subscriptions (
    id         BIGSERIAL PRIMARY KEY,
    user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    endpoint   TEXT NOT NULL,
    p256dh     TEXT NOT NULL,
    auth       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, endpoint)
)`

type PostgresNotificationRepository struct {
	db *gorm.DB

	mu    sync.Mutex
	ready bool
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// ensureTable creates push_subscriptions on first use. A failed attempt is
// retried on the next call.
func (r *PostgresNotificationRepository) ensureTable(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ready {
		return nil
	}
	if err := r.db.WithContext(ctx).Exec(createPushSubscriptionsSQL).Error; err != nil {
		return err
	}
	r.ready = true
	return nil
}

func (r *PostgresNotificationRepository) Upsert(ctx context.Context, sub *notification.PushSubscription) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).
		Create(sub).Error
	return translateError(err, "user")
}

func (r *PostgresNotificationRepository) ListByUser(ctx context.Context, userID int64) ([]notification.PushSubscription, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	subs := []notification.PushSubscription{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
