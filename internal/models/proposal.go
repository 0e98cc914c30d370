package models

type Proposal struct {
	BaseModel
	JobID       uint           `gorm:"not null;index" json:"jobId"`
	VendorID    uint           `gorm:"not null;index" json:"vendorId"`
	CoverLetter string         `gorm:"not null" json:"coverLetter"`
	Price       int            `gorm:"not null" json:"price"`
	Status      ProposalStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}
