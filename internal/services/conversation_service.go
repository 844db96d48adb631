package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"relay-messenger/internal/domain/chat"
	"relay-messenger/internal/domain/user"
	"relay-messenger/internal/repository"
	relay_errors "relay-messenger/pkg/errors"
)

type ConversationService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewConversationService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ConversationService {
	return &ConversationService{chatRepo: chatRepo, userRepo: userRepo, now: time.Now}
}

type CreateChatInput struct {
	UserID         int64
	ParticipantIDs []int64
	IsGroup        bool
	Name           *string
}

// CreateChat returns the id of the existing 1:1 chat between the two users
// when there is one, otherwise it creates a chat with the requester as admin.
// A non-group chat always has exactly two distinct members.
func (s *ConversationService) CreateChat(ctx context.Context, in CreateChatInput) (int64, error) {
	if in.UserID == 0 || len(in.ParticipantIDs) == 0 {
		return 0, fmt.Errorf("%w: user_id and participant_ids are required", relay_errors.ErrInvalidInput)
	}

	members := memberList(in.UserID, in.ParticipantIDs)
	if !in.IsGroup && len(members) != 2 {
		return 0, fmt.Errorf("%w: a non-group chat needs exactly one other participant", relay_errors.ErrInvalidInput)
	}

	var chatID int64
	err := s.chatRepo.Transaction(ctx, func(repo repository.ChatRepository) error {
		if !in.IsGroup {
			other := members[1]
			if err := repo.LockPair(ctx, in.UserID, other); err != nil {
				return err
			}
			existing, err := repo.FindDirectChat(ctx, in.UserID, other)
			if err == nil {
				chatID = existing
				return nil
			}
			if !errors.Is(err, relay_errors.ErrNotFound) {
				return err
			}
		}

		now := s.now()
		c := chat.Chat{
			Name:      in.Name,
			IsGroup:   in.IsGroup,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.Create(ctx, &c); err != nil {
			return err
		}
		for i, memberID := range members {
			p := chat.Participant{ChatID: c.ID, UserID: memberID, IsAdmin: i == 0}
			if err := repo.AddParticipant(ctx, &p); err != nil {
				return err
			}
		}
		chatID = c.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return chatID, nil
}

// memberList puts the requester first and drops repeated ids.
func memberList(requester int64, participants []int64) []int64 {
	seen := map[int64]bool{requester: true}
	members := []int64{requester}
	for _, id := range participants {
		if seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, id)
	}
	return members
}

func (s *ConversationService) GetChats(ctx context.Context, userID int64) ([]chat.Summary, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", relay_errors.ErrInvalidInput)
	}
	return s.chatRepo.ListSummaries(ctx, userID)
}

// GetContacts lists every other user ordered by name.
func (s *ConversationService) GetContacts(ctx context.Context, userID int64) ([]user.User, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", relay_errors.ErrInvalidInput)
	}
	return s.userRepo.ListExcept(ctx, userID)
}
