package repositories

import (
	"time"

	"eventhire_backend/internal/models"

	"gorm.io/gorm"
)

type OutboxRepository interface {
	Insert(db *gorm.DB, event *models.OutboxEvent) error
	FetchPending(db *gorm.DB, limit int, now time.Time) ([]models.OutboxEvent, error)
	MarkSent(db *gorm.DB, id uint) error
	MarkFailed(db *gorm.DB, event *models.OutboxEvent, cause error, maxRetries int, now time.Time) error
}

type OutboxRepositoryImpl struct{}

func NewOutboxRepository() OutboxRepository {
	return &OutboxRepositoryImpl{}
}

func (r *OutboxRepositoryImpl) Insert(db *gorm.DB, event *models.OutboxEvent) error {
	if event.Status == "" {
		event.Status = models.OutboxStatusPending
	}
	return db.Create(event).Error
}

// FetchPending возвращает события, готовые к (повторной) отправке.
func (r *OutboxRepositoryImpl) FetchPending(db *gorm.DB, limit int, now time.Time) ([]models.OutboxEvent, error) {
	var events []models.OutboxEvent
	err := db.
		Where("status = ? AND (next_retry_at IS NULL OR next_retry_at <= ?)", models.OutboxStatusPending, now).
		Order("id ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *OutboxRepositoryImpl) MarkSent(db *gorm.DB, id uint) error {
	return db.Model(&models.OutboxEvent{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": models.OutboxStatusSent, "last_error": ""}).Error
}

// MarkFailed увеличивает счетчик попыток и планирует повтор с экспоненциальной
// задержкой. После maxRetries событие переходит в failed.
func (r *OutboxRepositoryImpl) MarkFailed(db *gorm.DB, event *models.OutboxEvent, cause error, maxRetries int, now time.Time) error {
	retries := event.RetryCount + 1
	updates := map[string]interface{}{
		"retry_count": retries,
		"last_error":  cause.Error(),
	}

	if retries >= maxRetries {
		updates["status"] = models.OutboxStatusFailed
	} else {
		backoff := time.Duration(1<<uint(retries)) * time.Second
		updates["next_retry_at"] = now.Add(backoff)
	}

	return db.Model(&models.OutboxEvent{}).Where("id = ?", event.ID).Updates(updates).Error
}
