package repositories

import (
	"eventhire_backend/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	FindConversation(db *gorm.DB, userID, otherID uint) ([]models.Message, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

// FindConversation возвращает сообщения в обе стороны в хронологическом порядке.
func (r *MessageRepositoryImpl) FindConversation(db *gorm.DB, userID, otherID uint) ([]models.Message, error) {
	var messages []models.Message
	err := db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}
