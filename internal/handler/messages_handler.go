package handler

import (
	"net/http"

	"relay-messenger/internal/services"
	"relay-messenger/internal/transport/httpdto"
	"relay-messenger/pkg/logger"

	"github.com/gin-gonic/gin"
)

// MessagesHandler serves /messages: chats, messages and contacts.
type MessagesHandler struct {
	conversations *services.ConversationService
	messages      *services.MessageService
	log           *logger.Logger
}

func NewMessagesHandler(conversations *services.ConversationService, messages *services.MessageService, log *logger.Logger) *MessagesHandler {
	return &MessagesHandler{conversations: conversations, messages: messages, log: log}
}

func (h *MessagesHandler) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		h.query(c)
	case http.MethodPost:
		h.command(c)
	default:
		writeError(c, h.log, errMethodNotAllowed)
	}
}

func (h *MessagesHandler) command(c *gin.Context) {
	var req httpdto.MessagesRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}

	switch req.Action {
	case "send_message":
		view, err := h.messages.SendMessage(c.Request.Context(), services.SendMessageInput{
			ChatID:      req.ChatID,
			SenderID:    req.SenderID,
			Content:     req.Content,
			MessageType: req.MessageType,
			FileURL:     req.FileURL,
			FileName:    req.FileName,
			FileSize:    req.FileSize,
			Duration:    req.Duration,
			ReplyToID:   req.ReplyToID,
		})
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, httpdto.MessageEnvelope{Message: view})

	case "create_chat":
		chatID, err := h.conversations.CreateChat(c.Request.Context(), services.CreateChatInput{
			UserID:         req.UserID,
			ParticipantIDs: req.ParticipantIDs,
			IsGroup:        req.IsGroup,
			Name:           req.Name,
		})
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, httpdto.CreateChatResponse{ChatID: chatID})

	default:
		writeError(c, h.log, errInvalidRequest)
	}
}

func (h *MessagesHandler) query(c *gin.Context) {
	switch c.Query("action") {
	case "get_chats":
		userID, err := queryID(c, "user_id")
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		chats, err := h.conversations.GetChats(c.Request.Context(), userID)
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, httpdto.ChatsResponse{Chats: chats})

	case "get_messages":
		chatID, err := queryID(c, "chat_id")
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		limit, err := queryInt(c, "limit")
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		offset, err := queryInt(c, "offset")
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		msgs, err := h.messages.GetMessages(c.Request.Context(), chatID, limit, offset)
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, httpdto.MessagesResponse{Messages: msgs})

	case "get_contacts":
		userID, err := queryID(c, "user_id")
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		users, err := h.conversations.GetContacts(c.Request.Context(), userID)
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, httpdto.ContactsResponse{Contacts: httpdto.ContactsFromUsers(users)})

	default:
		writeError(c, h.log, errInvalidRequest)
	}
}
