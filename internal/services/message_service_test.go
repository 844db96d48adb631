package services

import (
	"context"
	"testing"
	"time"

	"relay-messenger/internal/domain/message"
	"relay-messenger/internal/repository/repotest"
	relay_errors "relay-messenger/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessageService() (*MessageService, *repotest.MessageRepo, *repotest.UserRepo) {
	users := repotest.NewUserRepo()
	messages := repotest.NewMessageRepo(users)
	svc := NewMessageService(messages, users)

	clock := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc, messages, users
}

func TestMessageService_SendMessageDefaultsAndSender(t *testing.T) {
	svc, repo, users := newTestMessageService()
	alice := users.Add("+1", "Alice")

	view, err := svc.SendMessage(context.Background(), SendMessageInput{ChatID: 10, SenderID: alice.ID})
	require.NoError(t, err)

	assert.NotZero(t, view.ID)
	assert.Equal(t, "", view.Content)
	assert.Equal(t, message.TypeText, view.MessageType)
	assert.False(t, view.IsRead)
	require.NotNil(t, view.SenderName)
	assert.Equal(t, "Alice", *view.SenderName)
	assert.Nil(t, view.SenderAvatar)
	assert.Equal(t, 1, repo.Count())
}

func TestMessageService_SendMessageKeepsAttachmentFields(t *testing.T) {
	svc, _, users := newTestMessageService()
	bob := users.Add("+2", "Bob")
	url := "https://cdn.example.test/files/a.ogg"
	size := int64(2048)
	duration := 12
	reply := int64(3)

	view, err := svc.SendMessage(context.Background(), SendMessageInput{
		ChatID:      10,
		SenderID:    bob.ID,
		MessageType: message.TypeAudio,
		FileURL:     &url,
		FileSize:    &size,
		Duration:    &duration,
		ReplyToID:   &reply,
	})
	require.NoError(t, err)
	assert.Equal(t, message.TypeAudio, view.MessageType)
	assert.Equal(t, url, *view.FileURL)
	assert.Equal(t, size, *view.FileSize)
	assert.Equal(t, duration, *view.Duration)
	assert.Equal(t, reply, *view.ReplyToID)
}

func TestMessageService_SendMessageUnknownSenderHasNoName(t *testing.T) {
	svc, _, _ := newTestMessageService()

	view, err := svc.SendMessage(context.Background(), SendMessageInput{ChatID: 10, SenderID: 77, Content: "hi"})
	require.NoError(t, err)
	assert.Nil(t, view.SenderName)
	assert.Equal(t, "hi", view.Content)
}

func TestMessageService_SendMessageValidation(t *testing.T) {
	svc, _, _ := newTestMessageService()

	_, err := svc.SendMessage(context.Background(), SendMessageInput{SenderID: 1})
	assert.ErrorIs(t, err, relay_errors.ErrInvalidInput)

	_, err = svc.SendMessage(context.Background(), SendMessageInput{ChatID: 1})
	assert.ErrorIs(t, err, relay_errors.ErrInvalidInput)

	_, err = svc.SendMessage(context.Background(), SendMessageInput{ChatID: 1, SenderID: 1, MessageType: "sticker"})
	assert.ErrorIs(t, err, relay_errors.ErrInvalidInput)
}

func TestMessageService_GetMessagesReturnsNewestPageOldestFirst(t *testing.T) {
	svc, _, users := newTestMessageService()
	alice := users.Add("+1", "Alice")
	ctx := context.Background()

	for _, text := range []string{"m1", "m2", "m3"} {
		_, err := svc.SendMessage(ctx, SendMessageInput{ChatID: 5, SenderID: alice.ID, Content: text})
		require.NoError(t, err)
	}

	page, err := svc.GetMessages(ctx, 5, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "m2", page[0].Content)
	assert.Equal(t, "m3", page[1].Content)
	require.NotNil(t, page[0].SenderName)
	assert.Equal(t, "Alice", *page[0].SenderName)

	older, err := svc.GetMessages(ctx, 5, 2, 2)
	require.NoError(t, err)
	require.Len(t, older, 1)
	assert.Equal(t, "m1", older[0].Content)
}

func TestMessageService_GetMessagesPaging(t *testing.T) {
	svc, _, _ := newTestMessageService()
	ctx := context.Background()
	for i := 0; i < 60; i++ {
		_, err := svc.SendMessage(ctx, SendMessageInput{ChatID: 8, SenderID: 1})
		require.NoError(t, err)
	}

	page, err := svc.GetMessages(ctx, 8, 0, 0)
	require.NoError(t, err)
	assert.Len(t, page, DefaultMessagePageSize)

	page, err = svc.GetMessages(ctx, 8, 1000, 0)
	require.NoError(t, err)
	assert.Len(t, page, 60)

	empty, err := svc.GetMessages(ctx, 99, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMessageService_GetMessagesValidation(t *testing.T) {
	svc, _, _ := newTestMessageService()

	_, err := svc.GetMessages(context.Background(), 0, 10, 0)
	assert.ErrorIs(t, err, relay_errors.ErrInvalidInput)

	_, err = svc.GetMessages(context.Background(), 1, -1, 0)
	assert.ErrorIs(t, err, relay_errors.ErrInvalidInput)

	_, err = svc.GetMessages(context.Background(), 1, 10, -5)
	assert.ErrorIs(t, err, relay_errors.ErrInvalidInput)
}
