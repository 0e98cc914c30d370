package services

import (
	"context"

	"eventhire_backend/internal/auth"
	"eventhire_backend/internal/models"
	"eventhire_backend/internal/repositories"
	"eventhire_backend/internal/services/dto"
	"eventhire_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MessageService interface {
	SendMessage(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.SendMessageRequest) (*models.Message, error)
	Conversation(ctx context.Context, db *gorm.DB, actor dto.Actor, otherUserID uint) ([]models.Message, error)
}

type MessageServiceImpl struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
}

func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) MessageService {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

func (s *MessageServiceImpl) SendMessage(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.SendMessageRequest) (*models.Message, error) {
	if !auth.HasPermission(actor.Role, auth.PermMessagesSend) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if req.ReceiverID == actor.UserID {
		return nil, apperrors.ErrCannotMessageSelf
	}

	db = db.WithContext(ctx)
	if _, err := s.userRepo.FindByID(db, req.ReceiverID); err != nil {
		return nil, mapRepoError(err)
	}

	message := &models.Message{
		SenderID:   actor.UserID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := s.messageRepo.Create(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return message, nil
}

// Conversation возвращает переписку текущего пользователя с otherUserID.
func (s *MessageServiceImpl) Conversation(ctx context.Context, db *gorm.DB, actor dto.Actor, otherUserID uint) ([]models.Message, error) {
	messages, err := s.messageRepo.FindConversation(db.WithContext(ctx), actor.UserID, otherUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return nonNil(messages), nil
}
