package models

type Job struct {
	BaseModel
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"not null" json:"description"`
	Budget      int         `gorm:"not null" json:"budget"`
	Category    JobCategory `gorm:"type:varchar(50);not null" json:"category"`
	ClientID    uint        `gorm:"not null;index" json:"clientId"`
	Status      JobStatus   `gorm:"type:varchar(20);not null;default:'open'" json:"status"`

	// Relations
	Milestones []Milestone `gorm:"foreignKey:JobID" json:"-"`
}
