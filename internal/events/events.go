package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eventhire_backend/internal/models"
	"eventhire_backend/internal/repositories"

	"gorm.io/gorm"
)

// Ключи маршрутизации событий на exchange.
const (
	MilestoneCompleted = "milestone.completed"
	MilestoneApproved  = "milestone.approved"
	MilestoneReleased  = "milestone.released"
	EscrowHeld         = "escrow.held"
	EscrowReleased     = "escrow.released"
)

// Publisher отправляет уже сериализованное событие.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
	Close() error
}

type MilestonePayload struct {
	MilestoneID uint                   `json:"milestoneId"`
	JobID       uint                   `json:"jobId"`
	Status      models.MilestoneStatus `json:"status"`
	ActorID     uint                   `json:"actorId"`
	Amount      float64                `json:"amount"`
	At          time.Time              `json:"at"`
}

type EscrowPayload struct {
	EscrowID    uint                `json:"escrowId"`
	MilestoneID uint                `json:"milestoneId"`
	Status      models.EscrowStatus `json:"status"`
	Amount      float64             `json:"amount"`
	At          time.Time           `json:"at"`
}

// MilestoneRoutingKey возвращает ключ события для нового статуса этапа.
func MilestoneRoutingKey(status models.MilestoneStatus) string {
	return "milestone." + string(status)
}

// Enqueue пишет событие в outbox. db должна быть транзакцией, в которой
// меняется сам агрегат.
func Enqueue(db *gorm.DB, repo repositories.OutboxRepository, aggregateType string, aggregateID uint, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", routingKey, err)
	}
	return repo.Insert(db, &models.OutboxEvent{
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		RoutingKey:    routingKey,
		Payload:       body,
		Status:        models.OutboxStatusPending,
	})
}
