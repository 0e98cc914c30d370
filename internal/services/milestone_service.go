package services

import (
	"context"
	"fmt"
	"time"

	"eventhire_backend/internal/auth"
	"eventhire_backend/internal/events"
	"eventhire_backend/internal/logger"
	"eventhire_backend/internal/metrics"
	"eventhire_backend/internal/models"
	"eventhire_backend/internal/repositories"
	"eventhire_backend/internal/services/dto"
	"eventhire_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MilestoneService interface {
	CreateMilestone(ctx context.Context, db *gorm.DB, actor dto.Actor, jobID uint, req *dto.CreateMilestoneRequest) (*models.Milestone, error)
	ListMilestones(ctx context.Context, db *gorm.DB, jobID uint) ([]models.Milestone, error)
	// UpdateStatus продвигает этап на один шаг pending→completed→approved→released.
	// Неизвестный этап дает 404 раньше проверки значения статуса.
	UpdateStatus(ctx context.Context, db *gorm.DB, actor dto.Actor, milestoneID uint, target models.MilestoneStatus) (*models.Milestone, error)
	GetEscrow(ctx context.Context, db *gorm.DB, actor dto.Actor, milestoneID uint) ([]models.EscrowTransaction, error)
}

type MilestoneServiceImpl struct {
	milestoneRepo repositories.MilestoneRepository
	escrowRepo    repositories.EscrowRepository
	jobRepo       repositories.JobRepository
	outboxRepo    repositories.OutboxRepository
	now           func() time.Time
}

func NewMilestoneService(
	milestoneRepo repositories.MilestoneRepository,
	escrowRepo repositories.EscrowRepository,
	jobRepo repositories.JobRepository,
	outboxRepo repositories.OutboxRepository,
) MilestoneService {
	return &MilestoneServiceImpl{
		milestoneRepo: milestoneRepo,
		escrowRepo:    escrowRepo,
		jobRepo:       jobRepo,
		outboxRepo:    outboxRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *MilestoneServiceImpl) CreateMilestone(ctx context.Context, db *gorm.DB, actor dto.Actor, jobID uint, req *dto.CreateMilestoneRequest) (*models.Milestone, error) {
	if !auth.HasPermission(actor.Role, auth.PermMilestonesCreate) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	db = db.WithContext(ctx)
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if job.ClientID != actor.UserID {
		return nil, apperrors.ErrNotOwner
	}

	milestone := &models.Milestone{
		JobID:       job.ID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		Status:      models.MilestoneStatusPending,
	}
	if err := s.milestoneRepo.Create(db, milestone); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Milestone created", "milestone_id", milestone.ID, "job_id", job.ID, "amount", milestone.Amount)
	return milestone, nil
}

func (s *MilestoneServiceImpl) ListMilestones(ctx context.Context, db *gorm.DB, jobID uint) ([]models.Milestone, error) {
	db = db.WithContext(ctx)
	if _, err := s.jobRepo.FindByID(db, jobID); err != nil {
		return nil, mapRepoError(err)
	}

	milestones, err := s.milestoneRepo.FindByJob(db, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return nonNil(milestones), nil
}

// UpdateStatus меняет статус, создает или освобождает эскроу и пишет события
// outbox в одной транзакции.
func (s *MilestoneServiceImpl) UpdateStatus(ctx context.Context, db *gorm.DB, actor dto.Actor, milestoneID uint, target models.MilestoneStatus) (*models.Milestone, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	milestone, err := s.milestoneRepo.FindByID(tx, milestoneID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	job, err := s.jobRepo.FindByID(tx, milestone.JobID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if !target.IsTarget() {
		return nil, apperrors.ValidationError(map[string]string{"status": "Must be one of: completed, approved, released"})
	}

	if err := authorizeTransition(actor, job, target); err != nil {
		return nil, err
	}

	from := milestone.Status
	if !from.CanTransitionTo(target) {
		return nil, apperrors.ErrInvalidStatus("milestone",
			fmt.Sprintf("Cannot move milestone from %s to %s", from, target)).
			WithDetails(map[string]string{"current": string(from), "requested": string(target)})
	}

	at := s.now()
	if err := s.milestoneRepo.UpdateStatus(tx, milestone.ID, from, target, at); err != nil {
		return nil, mapRepoError(err)
	}

	if err := events.Enqueue(tx, s.outboxRepo, "milestone", milestone.ID, events.MilestoneRoutingKey(target), events.MilestonePayload{
		MilestoneID: milestone.ID,
		JobID:       job.ID,
		Status:      target,
		ActorID:     actor.UserID,
		Amount:      milestone.Amount,
		At:          at,
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	escrowAmount, err := s.applyEscrowSideEffect(ctx, tx, milestone, target, at)
	if err != nil {
		return nil, err
	}

	updated, err := s.milestoneRepo.FindByID(tx, milestone.ID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.RecordMilestoneTransition(string(target))
	if escrowAmount > 0 {
		metrics.RecordEscrow(escrowOperation(target), escrowAmount)
	}

	logger.CtxInfo(ctx, "Milestone status updated",
		"milestone_id", milestone.ID,
		"from", from,
		"to", target,
	)
	return updated, nil
}

// applyEscrowSideEffect возвращает сумму, затронутую операцией эскроу.
func (s *MilestoneServiceImpl) applyEscrowSideEffect(ctx context.Context, tx *gorm.DB, milestone *models.Milestone, target models.MilestoneStatus, at time.Time) (float64, error) {
	switch target {
	case models.MilestoneStatusApproved:
		escrow := &models.EscrowTransaction{
			MilestoneID: milestone.ID,
			Amount:      milestone.Amount,
			Status:      models.EscrowStatusHeld,
		}
		if err := s.escrowRepo.Create(tx, escrow); err != nil {
			return 0, mapRepoError(err)
		}
		if err := events.Enqueue(tx, s.outboxRepo, "escrow", escrow.ID, events.EscrowHeld, events.EscrowPayload{
			EscrowID:    escrow.ID,
			MilestoneID: milestone.ID,
			Status:      escrow.Status,
			Amount:      escrow.Amount,
			At:          at,
		}); err != nil {
			return 0, apperrors.InternalError(err)
		}
		return escrow.Amount, nil

	case models.MilestoneStatusReleased:
		escrows, err := s.escrowRepo.FindByMilestone(tx, milestone.ID)
		if err != nil {
			return 0, apperrors.InternalError(err)
		}
		if len(escrows) == 0 {
			logger.CtxWarn(ctx, "No escrow transaction to release", "milestone_id", milestone.ID)
			return 0, nil
		}

		escrow := escrows[0]
		if err := s.escrowRepo.UpdateStatus(tx, escrow.ID, models.EscrowStatusReleased, at); err != nil {
			return 0, mapRepoError(err)
		}
		if err := events.Enqueue(tx, s.outboxRepo, "escrow", escrow.ID, events.EscrowReleased, events.EscrowPayload{
			EscrowID:    escrow.ID,
			MilestoneID: milestone.ID,
			Status:      models.EscrowStatusReleased,
			Amount:      escrow.Amount,
			At:          at,
		}); err != nil {
			return 0, apperrors.InternalError(err)
		}
		return escrow.Amount, nil
	}
	return 0, nil
}

// GetEscrow доступен владельцу вакансии и исполнителям.
func (s *MilestoneServiceImpl) GetEscrow(ctx context.Context, db *gorm.DB, actor dto.Actor, milestoneID uint) ([]models.EscrowTransaction, error) {
	db = db.WithContext(ctx)

	milestone, err := s.milestoneRepo.FindByID(db, milestoneID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	job, err := s.jobRepo.FindByID(db, milestone.JobID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	switch actor.Role {
	case models.UserRoleVendor:
	case models.UserRoleClient:
		if job.ClientID != actor.UserID {
			return nil, apperrors.ErrNotOwner
		}
	default:
		return nil, apperrors.ErrInsufficientPermissions
	}

	escrows, err := s.escrowRepo.FindByMilestone(db, milestone.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return nonNil(escrows), nil
}

// authorizeTransition: completed ставит любой исполнитель,
// approved и released только клиент-владелец вакансии.
func authorizeTransition(actor dto.Actor, job *models.Job, target models.MilestoneStatus) error {
	if !actor.Role.CanSetMilestoneStatus(target) {
		return apperrors.ErrInsufficientPermissions
	}
	if actor.Role == models.UserRoleClient && job.ClientID != actor.UserID {
		return apperrors.ErrNotOwner
	}
	return nil
}

func escrowOperation(target models.MilestoneStatus) string {
	if target == models.MilestoneStatusReleased {
		return string(models.EscrowStatusReleased)
	}
	return string(models.EscrowStatusHeld)
}
