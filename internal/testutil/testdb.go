package testutil

import (
	"testing"

	"eventhire_backend/database"
	"eventhire_backend/internal/auth"
	"eventhire_backend/internal/config"
	"eventhire_backend/internal/logger"
	"eventhire_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const TestSessionSecret = "test-session-secret"

// NewTestConfig возвращает конфиг с отдельной sqlite БД в памяти.
func NewTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg.Database.SlowQueryMillis = 500
	cfg.Session.Secret = TestSessionSecret
	cfg.Session.TTLMinutes = 60
	cfg.Session.Store = "db"
	cfg.Session.CookieName = "eventhire.sid"
	cfg.MQ.Exchange = "eventhire.events"
	cfg.Outbox.PollIntervalMillis = 10
	cfg.Outbox.BatchSize = 50
	cfg.Outbox.MaxRetries = 3
	return cfg
}

// OpenTestDB открывает мигрированную БД, которая закрывается по окончании теста.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return OpenTestDBWithConfig(t, NewTestConfig())
}

func OpenTestDBWithConfig(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()
	logger.Init("test")

	db, err := database.Open(cfg, nil)
	require.NoError(t, err, "не удалось открыть тестовую БД")
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// CreateUser создает пользователя с bcrypt хешем пароля.
func CreateUser(t *testing.T, db *gorm.DB, username, password string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Password: hash,
		UserType: role,
		FullName: username,
	}
	require.NoError(t, db.Create(user).Error, "не удалось создать пользователя %s", username)
	return user
}

// CreateJob создает вакансию клиента напрямую в БД.
func CreateJob(t *testing.T, db *gorm.DB, clientID uint, budget int) *models.Job {
	t.Helper()

	job := &models.Job{
		Title:       "Wedding staff",
		Description: "Need ushers and a DJ",
		Budget:      budget,
		Category:    models.JobCategoryWedding,
		ClientID:    clientID,
		Status:      models.JobStatusOpen,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

// CreateMilestone создает этап в статусе pending.
func CreateMilestone(t *testing.T, db *gorm.DB, jobID uint, amount float64) *models.Milestone {
	t.Helper()

	milestone := &models.Milestone{
		JobID:       jobID,
		Title:       "Deposit",
		Description: "Initial booking",
		Amount:      amount,
		Status:      models.MilestoneStatusPending,
	}
	require.NoError(t, db.Create(milestone).Error)
	return milestone
}
