package repository

import (
	"github.com/gatorbitepcc/cindr/internal/domain"
	"gorm.io/gorm"
)

// MessageRepository chat message data access interface
type MessageRepository interface {
	Create(msg *domain.ChatMessage) error
	FindByChat(chatID string, page, limit int) ([]*domain.ChatMessage, int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts the message and refreshes the parent connection's
// last-message fields in one transaction, so the thread preview can never
// drift from the message log.
func (r *messageRepository) Create(msg *domain.ChatMessage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Connection{}).
			Where("id = ?", msg.ChatID).
			Updates(map[string]interface{}{
				"last_message":           msg.Text,
				"last_message_at":        msg.CreatedAt,
				"last_message_sender_id": msg.SenderID,
			}).Error
	})
}

// FindByChat returns messages for a chat, server-ordered oldest first
func (r *messageRepository) FindByChat(chatID string, page, limit int) ([]*domain.ChatMessage, int64, error) {
	var messages []*domain.ChatMessage
	var total int64

	r.db.Model(&domain.ChatMessage{}).
		Where("chat_id = ?", chatID).
		Count(&total)

	offset := (page - 1) * limit
	err := r.db.Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	return messages, total, err
}
