package repositories

import (
	"errors"
	"time"

	"eventhire_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEscrowNotFound      = errors.New("escrow transaction not found")
	ErrEscrowAlreadyExists = errors.New("escrow transaction already exists for milestone")
)

type EscrowRepository interface {
	Create(db *gorm.DB, escrow *models.EscrowTransaction) error
	FindByID(db *gorm.DB, id uint) (*models.EscrowTransaction, error)
	FindByMilestone(db *gorm.DB, milestoneID uint) ([]models.EscrowTransaction, error)
	UpdateStatus(db *gorm.DB, id uint, status models.EscrowStatus, at time.Time) error
}

type EscrowRepositoryImpl struct{}

func NewEscrowRepository() EscrowRepository {
	return &EscrowRepositoryImpl{}
}

func (r *EscrowRepositoryImpl) Create(db *gorm.DB, escrow *models.EscrowTransaction) error {
	if err := db.Create(escrow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEscrowAlreadyExists
		}
		return err
	}
	return nil
}

func (r *EscrowRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.EscrowTransaction, error) {
	var escrow models.EscrowTransaction
	if err := db.First(&escrow, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEscrowNotFound
		}
		return nil, err
	}
	return &escrow, nil
}

func (r *EscrowRepositoryImpl) FindByMilestone(db *gorm.DB, milestoneID uint) ([]models.EscrowTransaction, error) {
	var escrows []models.EscrowTransaction
	err := db.Where("milestone_id = ?", milestoneID).Order("id ASC").Find(&escrows).Error
	return escrows, err
}

// UpdateStatus ставит releasedAt или refundedAt в зависимости от статуса.
func (r *EscrowRepositoryImpl) UpdateStatus(db *gorm.DB, id uint, status models.EscrowStatus, at time.Time) error {
	updates := map[string]interface{}{"status": status}
	switch status {
	case models.EscrowStatusReleased:
		updates["released_at"] = at
	case models.EscrowStatusRefunded:
		updates["refunded_at"] = at
	}

	result := db.Model(&models.EscrowTransaction{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEscrowNotFound
	}
	return nil
}
