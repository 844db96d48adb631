package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"relay-messenger/internal/domain/message"
	"relay-messenger/internal/repository"
	relay_errors "relay-messenger/pkg/errors"
)

const (
	DefaultMessagePageSize = 50
	MaxMessagePageSize     = 200
)

type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo, userRepo: userRepo, now: time.Now}
}

type SendMessageInput struct {
	ChatID      int64
	SenderID    int64
	Content     string
	MessageType string
	FileURL     *string
	FileName    *string
	FileSize    *int64
	Duration    *int
	ReplyToID   *int64
}

func (s *MessageService) SendMessage(ctx context.Context, in SendMessageInput) (message.View, error) {
	if in.ChatID == 0 || in.SenderID == 0 {
		return message.View{}, fmt.Errorf("%w: chat_id and sender_id are required", relay_errors.ErrInvalidInput)
	}
	if in.MessageType == "" {
		in.MessageType = message.TypeText
	}
	if !message.IsValidType(in.MessageType) {
		return message.View{}, fmt.Errorf("%w: unsupported message_type %q", relay_errors.ErrInvalidInput, in.MessageType)
	}

	m := message.Message{
		ChatID:      in.ChatID,
		SenderID:    in.SenderID,
		Content:     in.Content,
		MessageType: in.MessageType,
		FileURL:     in.FileURL,
		FileName:    in.FileName,
		FileSize:    in.FileSize,
		Duration:    in.Duration,
		ReplyToID:   in.ReplyToID,
		CreatedAt:   s.now(),
	}
	if err := s.messageRepo.Create(ctx, &m); err != nil {
		return message.View{}, err
	}

	view := message.View{Message: m}
	sender, err := s.userRepo.GetByID(ctx, in.SenderID)
	switch {
	case err == nil:
		view.SenderName = &sender.Name
		view.SenderAvatar = sender.AvatarURL
	case !errors.Is(err, relay_errors.ErrNotFound):
		return message.View{}, err
	}
	return view, nil
}

// GetMessages returns the page that ends offset messages before the newest
// one, oldest first.
func (s *MessageService) GetMessages(ctx context.Context, chatID int64, limit, offset int) ([]message.View, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("%w: chat_id is required", relay_errors.ErrInvalidInput)
	}
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", relay_errors.ErrInvalidInput)
	}
	if limit == 0 {
		limit = DefaultMessagePageSize
	}
	if limit > MaxMessagePageSize {
		limit = MaxMessagePageSize
	}

	page, err := s.messageRepo.ListByChat(ctx, chatID, limit, offset)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(page)-1; i < j; i, j = i+1, j-1 {
		page[i], page[j] = page[j], page[i]
	}
	return page, nil
}
