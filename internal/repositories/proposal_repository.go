package repositories

import (
	"errors"

	"eventhire_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProposalNotFound = errors.New("proposal not found")

type ProposalRepository interface {
	Create(db *gorm.DB, proposal *models.Proposal) error
	FindByID(db *gorm.DB, id uint) (*models.Proposal, error)
	FindByJob(db *gorm.DB, jobID uint) ([]models.Proposal, error)
	FindByVendor(db *gorm.DB, vendorID uint) ([]models.Proposal, error)
	FindByJobAndVendor(db *gorm.DB, jobID, vendorID uint) (*models.Proposal, error)
}

type ProposalRepositoryImpl struct{}

func NewProposalRepository() ProposalRepository {
	return &ProposalRepositoryImpl{}
}

func (r *ProposalRepositoryImpl) Create(db *gorm.DB, proposal *models.Proposal) error {
	return db.Create(proposal).Error
}

func (r *ProposalRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := db.First(&proposal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) FindByJob(db *gorm.DB, jobID uint) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := db.Where("job_id = ?", jobID).Order("created_at ASC, id ASC").Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepositoryImpl) FindByVendor(db *gorm.DB, vendorID uint) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := db.Where("vendor_id = ?", vendorID).Order("created_at DESC, id DESC").Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepositoryImpl) FindByJobAndVendor(db *gorm.DB, jobID, vendorID uint) (*models.Proposal, error) {
	var proposal models.Proposal
	err := db.Where("job_id = ? AND vendor_id = ?", jobID, vendorID).First(&proposal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}
