package services

import (
	"context"
	"fmt"
	"strings"

	"relay-messenger/internal/domain/notification"
	"relay-messenger/internal/repository"
	relay_errors "relay-messenger/pkg/errors"
	"relay-messenger/pkg/logger"

	"go.uber.org/zap"
)

const (
	DefaultNotificationTitle = "New message"
	DefaultNotificationIcon  = "/icon.png"
)

// Notification is the payload a push would carry.
type Notification struct {
	Title   string
	Message string
	Icon    string
}

// Dispatcher delivers one notification to one subscription.
type Dispatcher interface {
	Dispatch(ctx context.Context, sub notification.PushSubscription, n Notification) error
}

// LogDispatcher records the push instead of delivering it. Web Push delivery
// is not implemented.
type LogDispatcher struct {
	log *logger.Logger
}

func NewLogDispatcher(log *logger.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, sub notification.PushSubscription, n Notification) error {
	d.log.InfoCtx(ctx, "push notification not delivered",
		zap.Int64("user_id", sub.UserID),
		zap.String("endpoint", sub.Endpoint),
		zap.String("title", n.Title),
	)
	return nil
}

type NotificationService struct {
	repo       repository.NotificationRepository
	dispatcher Dispatcher
	log        *logger.Logger
}

func NewNotificationService(repo repository.NotificationRepository, dispatcher Dispatcher, log *logger.Logger) *NotificationService {
	if log == nil {
		log = logger.NewNop()
	}
	if dispatcher == nil {
		dispatcher = NewLogDispatcher(log)
	}
	return &NotificationService{repo: repo, dispatcher: dispatcher, log: log}
}

// SubscriptionInput is a browser push subscription: its endpoint plus the
// p256dh and auth keys.
type SubscriptionInput struct {
	Endpoint string
	P256dh   string
	Auth     string
}

type SendResult struct {
	Sent          int
	Subscriptions []notification.PushSubscription
}

func (s *NotificationService) Subscribe(ctx context.Context, userID int64, in *SubscriptionInput) (int64, error) {
	if userID == 0 || in == nil {
		return 0, fmt.Errorf("%w: user_id and subscription are required", relay_errors.ErrInvalidInput)
	}
	endpoint := strings.TrimSpace(in.Endpoint)
	if endpoint == "" || in.P256dh == "" || in.Auth == "" {
		return 0, fmt.Errorf("%w: subscription endpoint, keys.p256dh and keys.auth are required", relay_errors.ErrInvalidInput)
	}

	sub := notification.PushSubscription{
		UserID:   userID,
		Endpoint: endpoint,
		P256dh:   in.P256dh,
		Auth:     in.Auth,
	}
	if err := s.repo.Upsert(ctx, &sub); err != nil {
		return 0, err
	}
	return sub.ID, nil
}

// SendNotification hands the notification to the dispatcher once per stored
// subscription and reports how many were handed over.
func (s *NotificationService) SendNotification(ctx context.Context, userID int64, n Notification) (SendResult, error) {
	if userID == 0 {
		return SendResult{}, fmt.Errorf("%w: user_id is required", relay_errors.ErrInvalidInput)
	}
	if n.Title == "" {
		n.Title = DefaultNotificationTitle
	}
	if n.Icon == "" {
		n.Icon = DefaultNotificationIcon
	}

	subs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return SendResult{}, err
	}

	result := SendResult{Subscriptions: subs}
	for _, sub := range subs {
		if err := s.dispatcher.Dispatch(ctx, sub, n); err != nil {
			s.log.ErrorCtx(ctx, "push dispatch failed", zap.Int64("subscription_id", sub.ID), zap.Error(err))
			continue
		}
		result.Sent++
	}
	return result, nil
}

func (s *NotificationService) ListSubscriptions(ctx context.Context, userID int64) ([]notification.PushSubscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", relay_errors.ErrInvalidInput)
	}
	return s.repo.ListByUser(ctx, userID)
}
