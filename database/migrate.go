package database

import (
	"fmt"

	"eventhire_backend/internal/logger"
	"eventhire_backend/internal/models"

	"gorm.io/gorm"
)

// Models - все таблицы приложения в порядке зависимостей.
var Models = []interface{}{
	&models.User{},
	&models.Job{},
	&models.Proposal{},
	&models.Message{},
	&models.Milestone{},
	&models.EscrowTransaction{},
	&models.Session{},
	&models.OutboxEvent{},
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	logger.Info("AutoMigrate completed", "tables", len(Models))
	return nil
}
