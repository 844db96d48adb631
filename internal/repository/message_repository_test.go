package repository_test

import (
	"context"
	"testing"
	"time"

	"relay-messenger/internal/domain/chat"
	"relay-messenger/internal/domain/message"
	"relay-messenger/internal/repository"
	"relay-messenger/internal/services"
	relay_errors "relay-messenger/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_PagesNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	chats := repository.NewChatRepository(db)
	messages := repository.NewMessageRepository(db)

	alice := createUser(t, users, "+10000000001", "Alice")
	bob := createUser(t, users, "+10000000002", "Bob")
	chatID, err := services.NewConversationService(chats, users).
		CreateChat(ctx, services.CreateChatInput{UserID: alice.ID, ParticipantIDs: []int64{bob.ID}})
	require.NoError(t, err)

	// m4 and m5 share a timestamp; id breaks the tie
	base := time.Now().Add(-time.Hour).Truncate(time.Microsecond)
	offsets := []time.Duration{0, time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second}
	for i, at := range offsets {
		m := message.Message{
			ChatID:      chatID,
			SenderID:    alice.ID,
			Content:     []string{"m1", "m2", "m3", "m4", "m5"}[i],
			MessageType: message.TypeText,
			CreatedAt:   base.Add(at),
		}
		require.NoError(t, messages.Create(ctx, &m))
	}

	page, err := messages.ListByChat(ctx, chatID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"m5", "m4"}, contents(page))
	require.NotNil(t, page[0].SenderName)
	assert.Equal(t, "Alice", *page[0].SenderName)
	assert.Nil(t, page[0].SenderAvatar)

	page, err = messages.ListByChat(ctx, chatID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"m3", "m2"}, contents(page))

	page, err = messages.ListByChat(ctx, chatID, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, contents(page))

	page, err = messages.ListByChat(ctx, chatID+100, 2, 0)
	require.NoError(t, err)
	assert.Empty(t, page)

	var stored chat.Chat
	require.NoError(t, db.First(&stored, chatID).Error)
	assert.WithinDuration(t, base.Add(3*time.Second), stored.UpdatedAt, time.Millisecond)
}

func TestMessageService_GetMessagesReturnsLatestWindowOldestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	svc := services.NewMessageService(repository.NewMessageRepository(db), users)

	alice := createUser(t, users, "+10000000001", "Alice")
	bob := createUser(t, users, "+10000000002", "Bob")
	chatID, err := services.NewConversationService(repository.NewChatRepository(db), users).
		CreateChat(ctx, services.CreateChatInput{UserID: alice.ID, ParticipantIDs: []int64{bob.ID}})
	require.NoError(t, err)

	for _, text := range []string{"m1", "m2", "m3"} {
		_, err := svc.SendMessage(ctx, services.SendMessageInput{ChatID: chatID, SenderID: bob.ID, Content: text})
		require.NoError(t, err)
	}

	page, err := svc.GetMessages(ctx, chatID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"m2", "m3"}, contents(page))
	assert.Equal(t, message.TypeText, page[0].MessageType)
}

func TestMessageRepository_MissingChatOrSender(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	messages := repository.NewMessageRepository(db)
	alice := createUser(t, users, "+10000000001", "Alice")

	err := messages.Create(ctx, &message.Message{ChatID: 4242, SenderID: alice.ID, MessageType: message.TypeText})
	assert.ErrorIs(t, err, relay_errors.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&message.Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func contents(views []message.View) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Content)
	}
	return out
}
