package models

type Message struct {
	BaseModel
	SenderID   uint   `gorm:"not null;index" json:"senderId"`
	ReceiverID uint   `gorm:"not null;index" json:"receiverId"`
	Content    string `gorm:"not null" json:"content"`
}
