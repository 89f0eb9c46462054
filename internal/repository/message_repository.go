package repository

import (
	"fieldtrack-backend/internal/model"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *model.Message) error
	CreateMany(messages []model.Message) error
	FindByID(id uint) (*model.Message, error)
	Inbox(userID string) ([]model.Message, error)
	Conversation(userID, otherID string) ([]model.Message, error)
	UnreadCount(userID string) (int64, error)
	MarkRead(message *model.Message) error
	MarkConversationRead(senderID, receiverID string) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db}
}

func (r *messageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) CreateMany(messages []model.Message) error {
	if len(messages) == 0 {
		return nil
	}
	return r.db.Create(&messages).Error
}

func (r *messageRepository) FindByID(id uint) (*model.Message, error) {
	var message model.Message
	err := r.db.First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// Inbox returns everything the user sent or received, newest first.
func (r *messageRepository) Inbox(userID string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) Conversation(userID, otherID string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at asc").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) UnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) MarkRead(message *model.Message) error {
	if message.IsRead {
		return nil
	}
	return r.db.Model(message).Update("is_read", true).Error
}

// MarkConversationRead marks everything the sender sent to the receiver as
// read in one statement.
func (r *messageRepository) MarkConversationRead(senderID, receiverID string) error {
	return r.db.Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Update("is_read", true).Error
}
