package models

import "time"

// EscrowTransaction - условно удерживаемые средства по одобренному этапу.
type EscrowTransaction struct {
	BaseModel
	MilestoneID uint         `gorm:"not null;uniqueIndex" json:"milestoneId"`
	Amount      float64      `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status      EscrowStatus `gorm:"type:varchar(20);not null;default:'held'" json:"status"`
	ReleasedAt  *time.Time   `json:"releasedAt"`
	RefundedAt  *time.Time   `json:"refundedAt"`
}
