package message

import (
	"time"
)

// Message types accepted by send_message.
const (
	TypeText  = "text"
	TypeAudio = "audio"
	TypeImage = "image"
	TypeVideo = "video"
	TypeFile  = "file"
)

// Message represents the messages table. Rows are never updated or deleted.
type Message struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	ChatID      int64     `gorm:"column:chat_id" json:"chat_id"`
	SenderID    int64     `gorm:"column:sender_id" json:"sender_id"`
	Content     string    `gorm:"column:content" json:"content"`
	MessageType string    `gorm:"column:message_type" json:"message_type"`
	FileURL     *string   `gorm:"column:file_url" json:"file_url"`
	FileName    *string   `gorm:"column:file_name" json:"file_name"`
	FileSize    *int64    `gorm:"column:file_size" json:"file_size"`
	Duration    *int      `gorm:"column:duration" json:"duration"`
	ReplyToID   *int64    `gorm:"column:reply_to_id" json:"reply_to_id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	IsRead      bool      `gorm:"column:is_read" json:"is_read"`
}

// View is a message enriched with its sender's public identity.
type View struct {
	Message
	SenderName   *string `gorm:"column:sender_name" json:"sender_name"`
	SenderAvatar *string `gorm:"column:sender_avatar" json:"sender_avatar"`
}

func (Message) TableName() string {
	return "messages"
}

func IsValidType(t string) bool {
	switch t {
	case TypeText, TypeAudio, TypeImage, TypeVideo, TypeFile:
		return true
	}
	return false
}
