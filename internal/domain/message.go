package domain

import "time"

// ChatMessage is one message in a chat. ChatID is the connection ID.
// Messages are append-only: never mutated or deleted.
type ChatMessage struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ChatID     string    `gorm:"column:chat_id;type:varchar(36);index" json:"chat_id"`
	SenderID   string    `gorm:"column:sender_id;type:varchar(36)" json:"sender_id"`
	SenderName string    `gorm:"column:sender_name;type:varchar(100)" json:"sender_name"`
	Text       string    `gorm:"column:text;type:text" json:"text"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

// SendMessageRequest message-send payload
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}
