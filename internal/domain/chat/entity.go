package chat

import (
	"time"
)

// Chat represents the chats table
type Chat struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      *string   `gorm:"column:name" json:"name"`
	IsGroup   bool      `gorm:"column:is_group" json:"is_group"`
	AvatarURL *string   `gorm:"column:avatar_url" json:"avatar_url"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// Participant represents the chat_participants table
type Participant struct {
	ChatID  int64 `gorm:"column:chat_id;primaryKey" json:"chat_id"`
	UserID  int64 `gorm:"column:user_id;primaryKey" json:"user_id"`
	IsAdmin bool  `gorm:"column:is_admin" json:"is_admin"`
}

// Summary is one row of a user's chat list. For 1:1 chats Name, AvatarURL
// and IsOnline describe the other participant.
type Summary struct {
	ID                int64      `gorm:"column:id" json:"id"`
	Name              *string    `gorm:"column:name" json:"name"`
	IsGroup           bool       `gorm:"column:is_group" json:"is_group"`
	AvatarURL         *string    `gorm:"column:avatar_url" json:"avatar_url"`
	UpdatedAt         time.Time  `gorm:"column:updated_at" json:"updated_at"`
	LastMessage       *string    `gorm:"column:last_message" json:"last_message"`
	LastMessageTime   *time.Time `gorm:"column:last_message_time" json:"last_message_time"`
	UnreadCount       int64      `gorm:"column:unread_count" json:"unread_count"`
	ParticipantsCount int64      `gorm:"column:participants_count" json:"participants_count"`
	IsOnline          *bool      `gorm:"column:is_online" json:"is_online,omitempty"`
}

func (Chat) TableName() string {
	return "chats"
}

func (Participant) TableName() string {
	return "chat_participants"
}
