package services

import (
	"context"

	"eventhire_backend/internal/auth"
	"eventhire_backend/internal/logger"
	"eventhire_backend/internal/models"
	"eventhire_backend/internal/repositories"
	"eventhire_backend/internal/services/dto"
	"eventhire_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type JobService interface {
	CreateJob(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.CreateJobRequest) (*models.Job, error)
	// ListJobs возвращает все вакансии или только вакансии клиента clientID.
	ListJobs(ctx context.Context, db *gorm.DB, clientID *uint) ([]models.Job, error)
	GetJob(ctx context.Context, db *gorm.DB, id uint) (*models.Job, error)
}

type JobServiceImpl struct {
	jobRepo repositories.JobRepository
}

func NewJobService(jobRepo repositories.JobRepository) JobService {
	return &JobServiceImpl{jobRepo: jobRepo}
}

func (s *JobServiceImpl) CreateJob(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.CreateJobRequest) (*models.Job, error) {
	if !auth.HasPermission(actor.Role, auth.PermJobsCreate) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	job := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Category:    req.Category,
		ClientID:    actor.UserID,
		Status:      models.JobStatusOpen,
	}
	if err := s.jobRepo.Create(db.WithContext(ctx), job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Job created", "job_id", job.ID, "category", job.Category)
	return job, nil
}

func (s *JobServiceImpl) ListJobs(ctx context.Context, db *gorm.DB, clientID *uint) ([]models.Job, error) {
	var (
		jobs []models.Job
		err  error
	)
	if clientID != nil {
		jobs, err = s.jobRepo.FindByClient(db.WithContext(ctx), *clientID)
	} else {
		jobs, err = s.jobRepo.FindAll(db.WithContext(ctx))
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return nonNil(jobs), nil
}

func (s *JobServiceImpl) GetJob(ctx context.Context, db *gorm.DB, id uint) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return job, nil
}

// nonNil гарантирует "[]" вместо "null" в JSON ответе.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
