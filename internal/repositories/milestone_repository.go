package repositories

import (
	"errors"
	"time"

	"eventhire_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMilestoneNotFound = errors.New("milestone not found")
	// Статус этапа изменился между чтением и записью.
	ErrMilestoneStatusChanged = errors.New("milestone status changed concurrently")
)

type MilestoneRepository interface {
	Create(db *gorm.DB, milestone *models.Milestone) error
	FindByID(db *gorm.DB, id uint) (*models.Milestone, error)
	FindByJob(db *gorm.DB, jobID uint) ([]models.Milestone, error)
	UpdateStatus(db *gorm.DB, id uint, from, to models.MilestoneStatus, at time.Time) error
}

type MilestoneRepositoryImpl struct{}

func NewMilestoneRepository() MilestoneRepository {
	return &MilestoneRepositoryImpl{}
}

func (r *MilestoneRepositoryImpl) Create(db *gorm.DB, milestone *models.Milestone) error {
	return db.Create(milestone).Error
}

func (r *MilestoneRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Milestone, error) {
	var milestone models.Milestone
	if err := db.First(&milestone, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, err
	}
	return &milestone, nil
}

func (r *MilestoneRepositoryImpl) FindByJob(db *gorm.DB, jobID uint) ([]models.Milestone, error) {
	var milestones []models.Milestone
	err := db.Where("job_id = ?", jobID).Order("created_at ASC, id ASC").Find(&milestones).Error
	return milestones, err
}

// UpdateStatus переводит этап из from в to и ставит метку времени перехода.
// Если этап уже не в статусе from, возвращает ErrMilestoneStatusChanged.
func (r *MilestoneRepositoryImpl) UpdateStatus(db *gorm.DB, id uint, from, to models.MilestoneStatus, at time.Time) error {
	updates := map[string]interface{}{"status": to}
	switch to {
	case models.MilestoneStatusCompleted:
		updates["completed_at"] = at
	case models.MilestoneStatusApproved:
		updates["approved_at"] = at
	case models.MilestoneStatusReleased:
		updates["released_at"] = at
	}

	result := db.Model(&models.Milestone{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMilestoneStatusChanged
	}
	return nil
}
