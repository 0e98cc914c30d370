package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PortfolioEntry struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type User struct {
	BaseModel
	Username    string                              `gorm:"uniqueIndex;not null" json:"username"`
	Password    string                              `gorm:"not null" json:"-"`
	UserType    UserRole                            `gorm:"type:varchar(20);not null" json:"userType"`
	FullName    string                              `json:"fullName"`
	Description string                              `json:"description"`
	Skills      StringList                          `json:"skills"`
	Portfolio   datatypes.JSONSlice[PortfolioEntry] `json:"portfolio"`
}

// BeforeCreate хранит пустые списки как [], а не null.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Skills == nil {
		u.Skills = StringList{}
	}
	if u.Portfolio == nil {
		u.Portfolio = datatypes.NewJSONSlice([]PortfolioEntry{})
	}
	return nil
}
