package notification

import (
	"time"
)

// PushSubscription represents the push_subscriptions table. A row is unique
// per (user_id, endpoint).
type PushSubscription struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id" json:"user_id"`
	Endpoint  string    `gorm:"column:endpoint" json:"endpoint"`
	P256dh    string    `gorm:"column:p256dh" json:"p256dh"`
	Auth      string    `gorm:"column:auth" json:"auth"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (PushSubscription) TableName() string {
	return "push_subscriptions"
}
