package httpdto

import (
	"relay-messenger/internal/domain/chat"
	"relay-messenger/internal/domain/message"
)

// MessagesRequest is the body of POST /messages for send_message and create_chat.
type MessagesRequest struct {
	Action string `json:"action"`

	ChatID      int64   `json:"chat_id"`
	SenderID    int64   `json:"sender_id"`
	Content     string  `json:"content"`
	MessageType string  `json:"message_type"`
	FileURL     *string `json:"file_url"`
	FileName    *string `json:"file_name"`
	FileSize    *int64  `json:"file_size"`
	Duration    *int    `json:"duration"`
	ReplyToID   *int64  `json:"reply_to_id"`

	UserID         int64   `json:"user_id"`
	ParticipantIDs []int64 `json:"participant_ids"`
	IsGroup        bool    `json:"is_group"`
	Name           *string `json:"name"`
}

type MessageEnvelope struct {
	Message message.View `json:"message"`
}

type CreateChatResponse struct {
	ChatID int64 `json:"chat_id"`
}

type ChatsResponse struct {
	Chats []chat.Summary `json:"chats"`
}

type MessagesResponse struct {
	Messages []message.View `json:"messages"`
}

type ContactsResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}
