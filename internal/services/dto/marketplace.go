package dto

import (
	"time"

	"eventhire_backend/internal/models"
)

type CreateJobRequest struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Description string             `json:"description" validate:"required,max=5000"`
	Budget      int                `json:"budget" validate:"gt=0"`
	Category    models.JobCategory `json:"category" validate:"required,is-job-category"`
}

type CreateProposalRequest struct {
	JobID       uint   `json:"jobId" validate:"required,gt=0"`
	CoverLetter string `json:"coverLetter" validate:"required,max=5000"`
	Price       int    `json:"price" validate:"gt=0"`
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiverId" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required,max=5000"`
}

type CreateMilestoneRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"required,max=2000"`
	Amount      float64    `json:"amount" validate:"gt=0,lte=99999999.99"`
	DueDate     *time.Time `json:"dueDate"`
}

type UpdateMilestoneStatusRequest struct {
	Status models.MilestoneStatus `json:"status" validate:"required"`
}

// UpdateProfileRequest - nil поля не меняются.
type UpdateProfileRequest struct {
	FullName    *string                  `json:"fullName" validate:"omitempty,max=100"`
	Description *string                  `json:"description" validate:"omitempty,max=2000"`
	Skills      *[]string                `json:"skills" validate:"omitempty,max=50,dive,required,max=50"`
	Portfolio   *[]models.PortfolioEntry `json:"portfolio" validate:"omitempty,max=50,dive"`
}
