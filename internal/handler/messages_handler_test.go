package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagesHandler_CreateChatDeduplicatesDirect(t *testing.T) {
	env := newTestEnv()
	a := env.users.Add("+1", "Alice")
	b := env.users.Add("+2", "Bob")

	create := func(isGroup bool) float64 {
		w := env.do(t, http.MethodPost, "/messages", map[string]interface{}{
			"action": "create_chat", "user_id": a.ID, "participant_ids": []int64{b.ID}, "is_group": isGroup,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode(t, w)["chat_id"].(float64)
	}

	first := create(false)
	assert.Equal(t, first, create(false))
	assert.NotEqual(t, first, create(true))

	w := env.do(t, http.MethodPost, "/messages", map[string]interface{}{"action": "create_chat", "user_id": a.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user_id and participant_ids are required", errorOf(t, w))

	w = env.do(t, http.MethodPost, "/messages", map[string]interface{}{
		"action": "create_chat", "user_id": a.ID, "participant_ids": []int64{a.ID},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "a non-group chat needs exactly one other participant", errorOf(t, w))
}

func TestMessagesHandler_SendAndPage(t *testing.T) {
	env := newTestEnv()
	a := env.users.Add("+1", "Alice")

	for _, text := range []string{"m1", "m2", "m3"} {
		w := env.do(t, http.MethodPost, "/messages", map[string]interface{}{
			"action": "send_message", "chat_id": 1, "sender_id": a.ID, "content": text,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		msg := decode(t, w)["message"].(map[string]interface{})
		assert.Equal(t, "text", msg["message_type"])
		assert.Equal(t, "Alice", msg["sender_name"])
		assert.Equal(t, false, msg["is_read"])
	}

	w := env.do(t, http.MethodGet, "/messages?action=get_messages&chat_id=1&limit=2&offset=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	msgs := decode(t, w)["messages"].([]interface{})
	require.Len(t, msgs, 2)
	assert.Equal(t, "m2", msgs[0].(map[string]interface{})["content"])
	assert.Equal(t, "m3", msgs[1].(map[string]interface{})["content"])

	w = env.do(t, http.MethodGet, "/messages?action=get_messages&chat_id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["messages"], 3)

	w = env.do(t, http.MethodGet, "/messages?action=get_messages&chat_id=1&limit=ten", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "limit must be an integer", errorOf(t, w))

	w = env.do(t, http.MethodGet, "/messages?action=get_messages", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessagesHandler_SendMessageValidation(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/messages", map[string]interface{}{"action": "send_message", "chat_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "chat_id and sender_id are required", errorOf(t, w))

	w = env.do(t, http.MethodPost, "/messages", map[string]interface{}{
		"action": "send_message", "chat_id": 1, "sender_id": 1, "message_type": "gif",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessagesHandler_ChatsAndContacts(t *testing.T) {
	env := newTestEnv()
	a := env.users.Add("+1", "Carol")
	env.users.Add("+2", "Bob")
	env.users.Add("+3", "Alice")

	w := env.do(t, http.MethodPost, "/messages", map[string]interface{}{
		"action": "create_chat", "user_id": a.ID, "participant_ids": []int64{2, 3}, "is_group": true, "name": "Team",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/messages?action=get_chats&user_id=%d", a.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	chats := decode(t, w)["chats"].([]interface{})
	require.Len(t, chats, 1)
	row := chats[0].(map[string]interface{})
	assert.Equal(t, "Team", row["name"])
	assert.Equal(t, float64(3), row["participants_count"])
	_, hasOnline := row["is_online"]
	assert.False(t, hasOnline)

	w = env.do(t, http.MethodGet, "/messages?action=get_chats&user_id=99", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["chats"])

	w = env.do(t, http.MethodGet, fmt.Sprintf("/messages?action=get_contacts&user_id=%d", a.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	contacts := decode(t, w)["contacts"].([]interface{})
	require.Len(t, contacts, 2)
	first := contacts[0].(map[string]interface{})
	assert.Equal(t, "Alice", first["name"])
	assert.True(t, hasKeys(first, "id", "name", "phone", "avatar_url", "is_online", "last_seen"), keysOf(first))

	w = env.do(t, http.MethodGet, "/messages?action=get_everything", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request", errorOf(t, w))
}
