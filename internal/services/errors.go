package services

import (
	"errors"

	"eventhire_backend/internal/repositories"
	"eventhire_backend/pkg/apperrors"
)

// mapRepoError переводит ошибки репозиториев в ошибки приложения.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrNotFound(err, "user", "User not found")
	case errors.Is(err, repositories.ErrJobNotFound):
		return apperrors.ErrNotFound(err, "job", "Job not found")
	case errors.Is(err, repositories.ErrProposalNotFound):
		return apperrors.ErrNotFound(err, "proposal", "Proposal not found")
	case errors.Is(err, repositories.ErrMilestoneNotFound):
		return apperrors.ErrNotFound(err, "milestone", "Milestone not found")
	case errors.Is(err, repositories.ErrEscrowNotFound):
		return apperrors.ErrNotFound(err, "escrow", "Escrow transaction not found")
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrUsernameTaken.WithError(err)
	case errors.Is(err, repositories.ErrMilestoneStatusChanged):
		return apperrors.ErrConflict(err, "milestone", "Milestone status was changed by another request")
	case errors.Is(err, repositories.ErrEscrowAlreadyExists):
		return apperrors.ErrConflict(err, "escrow", "Escrow transaction already exists for this milestone")
	}

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr
	}
	return apperrors.InternalError(err)
}
