package models

import "time"

// MessageType distinguishes the two sides of a conversation.
type MessageType string

const (
	MessageTypeUser MessageType = "USER"
	MessageTypeBot  MessageType = "BOT"
)

func (t MessageType) Valid() bool {
	return t == MessageTypeUser || t == MessageTypeBot
}

func (t MessageType) String() string { return string(t) }

// ChatSession is a conversation container owned by a user. Products lists the
// catalog items discussed in the session; it may be empty.
type ChatSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Products  []Product `gorm:"many2many:chat_session_products" json:"products,omitempty"`
	StartedAt time.Time `gorm:"index;autoCreateTime" json:"started_at"`

	// Messages are owned by the session and removed with it.
	Messages []ChatMessage `gorm:"constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

func (ChatSession) TableName() string { return "chat_sessions" }

// ChatMessage is one turn in a session. Messages within a session are ordered
// by Timestamp. USER/BOT turns are not required to alternate.
type ChatMessage struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ChatSessionID uint        `gorm:"index;not null" json:"chat_session_id"`
	MessageType   MessageType `gorm:"size:10;not null" json:"message_type"`
	Content       string      `gorm:"size:5000;not null" json:"content"`
	Timestamp     time.Time   `gorm:"index;autoCreateTime" json:"timestamp"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
