package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"relay-messenger/internal/domain/chat"
	"relay-messenger/internal/domain/message"
	"relay-messenger/internal/domain/user"
	"relay-messenger/internal/repository"
	relay_errors "relay-messenger/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Users []SeedUser
}

type SeedUser struct {
	Phone string
	Name  string
	Bio   string
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Users: []SeedUser{
			{Phone: "+10000000001", Name: "Alice", Bio: "first test user"},
			{Phone: "+10000000002", Name: "Bob", Bio: "second test user"},
			{Phone: "+10000000003", Name: "Carol"},
		},
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Users    []user.User
	Chats    []chat.Chat
	Messages []message.Message
}

// SeedDevelopment creates a handful of users, a 1:1 chat between the first
// two and a group chat with everyone. Reruns reuse the existing users (by
// phone), the existing 1:1 chat and the existing group (by name); messages are
// only written into chats created by this run.
func SeedDevelopment(db *gorm.DB, cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}
	if len(cfg.Users) < 2 {
		return nil, fmt.Errorf("seed needs at least two users, got %d", len(cfg.Users))
	}

	result := &SeedResult{}
	log.Println("Starting database seeding...")

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, su := range cfg.Users {
			u, err := seedUser(tx, su)
			if err != nil {
				return err
			}
			result.Users = append(result.Users, u)
		}

		direct, newDirect, err := seedDirectChat(tx, result.Users[0], result.Users[1])
		if err != nil {
			return err
		}
		group, newGroup, err := seedGroupChat(tx, "Everyone", result.Users)
		if err != nil {
			return err
		}
		result.Chats = append(result.Chats, direct, group)
		created := map[int64]bool{direct.ID: newDirect, group.ID: newGroup}

		lines := []struct {
			chat   chat.Chat
			sender user.User
			text   string
		}{
			{direct, result.Users[0], "Hi Bob!"},
			{direct, result.Users[1], "Hey Alice, how are you?"},
			{group, result.Users[0], "Welcome to the group"},
		}
		for _, line := range lines {
			if !created[line.chat.ID] {
				continue
			}
			m := message.Message{
				ChatID:      line.chat.ID,
				SenderID:    line.sender.ID,
				Content:     line.text,
				MessageType: message.TypeText,
			}
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("seed message: %w", err)
			}
			result.Messages = append(result.Messages, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Seeded %d users, %d chats, %d messages", len(result.Users), len(result.Chats), len(result.Messages))
	return result, nil
}

func seedUser(tx *gorm.DB, su SeedUser) (user.User, error) {
	u := user.User{Phone: su.Phone, Name: su.Name}
	if su.Bio != "" {
		bio := su.Bio
		u.Bio = &bio
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoNothing: true,
	}).Create(&u).Error; err != nil {
		return user.User{}, fmt.Errorf("seed user %s: %w", su.Phone, err)
	}

	var stored user.User
	if err := tx.Where("phone = ?", su.Phone).First(&stored).Error; err != nil {
		return user.User{}, fmt.Errorf("reload user %s: %w", su.Phone, err)
	}
	return stored, nil
}

// seedDirectChat returns the 1:1 chat between a and b, creating it when the
// pair has none. The bool reports whether it was created.
func seedDirectChat(tx *gorm.DB, a, b user.User) (chat.Chat, bool, error) {
	chats := repository.NewChatRepository(tx)
	ctx := context.Background()
	if err := chats.LockPair(ctx, a.ID, b.ID); err != nil {
		return chat.Chat{}, false, fmt.Errorf("lock direct chat: %w", err)
	}
	id, err := chats.FindDirectChat(ctx, a.ID, b.ID)
	switch {
	case err == nil:
		var existing chat.Chat
		if err := tx.First(&existing, id).Error; err != nil {
			return chat.Chat{}, false, fmt.Errorf("reload direct chat: %w", err)
		}
		return existing, false, nil
	case !errors.Is(err, relay_errors.ErrNotFound):
		return chat.Chat{}, false, fmt.Errorf("find direct chat: %w", err)
	}
	c, err := seedChat(tx, nil, false, []user.User{a, b})
	return c, err == nil, err
}

func seedGroupChat(tx *gorm.DB, name string, members []user.User) (chat.Chat, bool, error) {
	var existing []chat.Chat
	if err := tx.Where("is_group = TRUE AND name = ?", name).Order("id").Limit(1).Find(&existing).Error; err != nil {
		return chat.Chat{}, false, fmt.Errorf("find group chat: %w", err)
	}
	if len(existing) > 0 {
		return existing[0], false, nil
	}
	c, err := seedChat(tx, &name, true, members)
	return c, err == nil, err
}

func seedChat(tx *gorm.DB, name *string, isGroup bool, members []user.User) (chat.Chat, error) {
	c := chat.Chat{Name: name, IsGroup: isGroup, UpdatedAt: time.Now()}
	if err := tx.Create(&c).Error; err != nil {
		return chat.Chat{}, fmt.Errorf("seed chat: %w", err)
	}
	for i, m := range members {
		p := chat.Participant{ChatID: c.ID, UserID: m.ID, IsAdmin: i == 0}
		if err := tx.Create(&p).Error; err != nil {
			return chat.Chat{}, fmt.Errorf("seed participant: %w", err)
		}
	}
	return c, nil
}
