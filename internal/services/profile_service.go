package services

import (
	"context"

	"eventhire_backend/internal/models"
	"eventhire_backend/internal/repositories"
	"eventhire_backend/internal/services/dto"
	"eventhire_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService interface {
	UpdateProfile(ctx context.Context, db *gorm.DB, userID uint, req *dto.UpdateProfileRequest) (*models.User, error)
}

type ProfileServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewProfileService(userRepo repositories.UserRepository) ProfileService {
	return &ProfileServiceImpl{userRepo: userRepo}
}

// UpdateProfile меняет только переданные поля и возвращает обновленного пользователя.
func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, userID uint, req *dto.UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Skills != nil {
		updates["skills"] = models.StringList(*req.Skills)
	}
	if req.Portfolio != nil {
		updates["portfolio"] = datatypes.NewJSONSlice(*req.Portfolio)
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.userRepo.UpdateProfile(tx, userID, updates); err != nil {
		return nil, mapRepoError(err)
	}

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}
