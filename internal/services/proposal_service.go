package services

import (
	"context"
	"errors"

	"eventhire_backend/internal/auth"
	"eventhire_backend/internal/logger"
	"eventhire_backend/internal/models"
	"eventhire_backend/internal/repositories"
	"eventhire_backend/internal/services/dto"
	"eventhire_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProposalService interface {
	CreateProposal(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.CreateProposalRequest) (*models.Proposal, error)
	// ListJobProposals: владелец вакансии видит все предложения, исполнитель только свое.
	ListJobProposals(ctx context.Context, db *gorm.DB, actor dto.Actor, jobID uint) ([]models.Proposal, error)
	ListMyProposals(ctx context.Context, db *gorm.DB, actor dto.Actor) ([]models.Proposal, error)
}

type ProposalServiceImpl struct {
	proposalRepo repositories.ProposalRepository
	jobRepo      repositories.JobRepository
}

func NewProposalService(proposalRepo repositories.ProposalRepository, jobRepo repositories.JobRepository) ProposalService {
	return &ProposalServiceImpl{
		proposalRepo: proposalRepo,
		jobRepo:      jobRepo,
	}
}

func (s *ProposalServiceImpl) CreateProposal(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.CreateProposalRequest) (*models.Proposal, error) {
	if !auth.HasPermission(actor.Role, auth.PermProposalsCreate) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.jobRepo.FindByID(tx, req.JobID); err != nil {
		return nil, mapRepoError(err)
	}

	_, err := s.proposalRepo.FindByJobAndVendor(tx, req.JobID, actor.UserID)
	switch {
	case err == nil:
		return nil, apperrors.ErrProposalAlreadyExists
	case !errors.Is(err, repositories.ErrProposalNotFound):
		return nil, apperrors.InternalError(err)
	}

	proposal := &models.Proposal{
		JobID:       req.JobID,
		VendorID:    actor.UserID,
		CoverLetter: req.CoverLetter,
		Price:       req.Price,
		Status:      models.ProposalStatusPending,
	}
	if err := s.proposalRepo.Create(tx, proposal); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Proposal submitted", "proposal_id", proposal.ID, "job_id", proposal.JobID)
	return proposal, nil
}

func (s *ProposalServiceImpl) ListJobProposals(ctx context.Context, db *gorm.DB, actor dto.Actor, jobID uint) ([]models.Proposal, error) {
	db = db.WithContext(ctx)

	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	switch actor.Role {
	case models.UserRoleClient:
		if job.ClientID != actor.UserID {
			return nil, apperrors.ErrNotOwner
		}
		proposals, err := s.proposalRepo.FindByJob(db, jobID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return nonNil(proposals), nil

	case models.UserRoleVendor:
		proposal, err := s.proposalRepo.FindByJobAndVendor(db, jobID, actor.UserID)
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return []models.Proposal{}, nil
		}
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return []models.Proposal{*proposal}, nil

	default:
		return nil, apperrors.ErrInsufficientPermissions
	}
}

func (s *ProposalServiceImpl) ListMyProposals(ctx context.Context, db *gorm.DB, actor dto.Actor) ([]models.Proposal, error) {
	if !auth.HasPermission(actor.Role, auth.PermProposalsReadOwn) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	proposals, err := s.proposalRepo.FindByVendor(db.WithContext(ctx), actor.UserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return nonNil(proposals), nil
}
