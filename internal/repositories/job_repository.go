package repositories

import (
	"errors"

	"eventhire_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id uint) (*models.Job, error)
	FindAll(db *gorm.DB) ([]models.Job, error)
	FindByClient(db *gorm.DB, clientID uint) ([]models.Job, error)
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Job, error) {
	var job models.Job
	if err := db.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// FindAll возвращает вакансии, новые первыми.
func (r *JobRepositoryImpl) FindAll(db *gorm.DB) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Order("created_at DESC, id DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindByClient(db *gorm.DB, clientID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("client_id = ?", clientID).Order("created_at DESC, id DESC").Find(&jobs).Error
	return jobs, err
}
