package httpdto

import (
	"time"

	"relay-messenger/internal/domain/notification"
)

// PushSubscriptionPayload is the JSON form of a browser PushSubscription.
type PushSubscriptionPayload struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type NotificationsRequest struct {
	Action       string                   `json:"action"`
	UserID       int64                    `json:"user_id"`
	Subscription *PushSubscriptionPayload `json:"subscription"`
	Title        string                   `json:"title"`
	Message      string                   `json:"message"`
	Icon         string                   `json:"icon"`
}

type SubscribeResponse struct {
	Success        bool  `json:"success"`
	SubscriptionID int64 `json:"subscription_id"`
}

type SubscriptionCredentials struct {
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

type SendNotificationResponse struct {
	Success       bool                      `json:"success"`
	Sent          int                       `json:"sent"`
	Subscriptions []SubscriptionCredentials `json:"subscriptions,omitempty"`
	Message       string                    `json:"message,omitempty"`
}

type SubscriptionSummary struct {
	ID        int64     `json:"id"`
	Endpoint  string    `json:"endpoint"`
	CreatedAt time.Time `json:"created_at"`
}

type SubscriptionsResponse struct {
	Subscriptions []SubscriptionSummary `json:"subscriptions"`
}

func CredentialsFromSubscriptions(subs []notification.PushSubscription) []SubscriptionCredentials {
	out := make([]SubscriptionCredentials, 0, len(subs))
	for _, s := range subs {
		out = append(out, SubscriptionCredentials{Endpoint: s.Endpoint, P256dh: s.P256dh, Auth: s.Auth})
	}
	return out
}

func SummariesFromSubscriptions(subs []notification.PushSubscription) []SubscriptionSummary {
	out := make([]SubscriptionSummary, 0, len(subs))
	for _, s := range subs {
		out = append(out, SubscriptionSummary{ID: s.ID, Endpoint: s.Endpoint, CreatedAt: s.CreatedAt})
	}
	return out
}
