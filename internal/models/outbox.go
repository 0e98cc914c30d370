package models

import (
	"time"

	"gorm.io/datatypes"
)

type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "pending"
	OutboxStatusSent    OutboxStatus = "sent"
	OutboxStatusFailed  OutboxStatus = "failed"
)

// OutboxEvent записывается в той же транзакции, что и изменение агрегата,
// и публикуется воркером позже.
type OutboxEvent struct {
	ID            uint           `gorm:"primaryKey"`
	AggregateType string         `gorm:"size:50;not null"`
	AggregateID   uint           `gorm:"not null"`
	RoutingKey    string         `gorm:"size:100;not null"`
	Payload       datatypes.JSON `gorm:"not null"`
	Status        OutboxStatus   `gorm:"size:20;not null;default:'pending';index:idx_outbox_pending,priority:1"`
	RetryCount    int            `gorm:"not null;default:0"`
	NextRetryAt   *time.Time     `gorm:"index:idx_outbox_pending,priority:2"`
	LastError     string
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}
