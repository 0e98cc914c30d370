package models

import "time"

type Milestone struct {
	BaseModel
	JobID       uint            `gorm:"not null;index" json:"jobId"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"not null" json:"description"`
	Amount      float64         `gorm:"type:decimal(10,2);not null" json:"amount"`
	DueDate     *time.Time      `json:"dueDate"`
	Status      MilestoneStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CompletedAt *time.Time      `json:"completedAt"`
	ApprovedAt  *time.Time      `json:"approvedAt"`
	ReleasedAt  *time.Time      `json:"releasedAt"`
}
