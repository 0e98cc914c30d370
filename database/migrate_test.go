package database

import (
	"testing"
	"time"

	"eventhire_backend/internal/config"
	"eventhire_backend/internal/logger"
	"eventhire_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *config.Config {
	t.Helper()
	logger.Init("test")

	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg.Database.SlowQueryMillis = 200
	return cfg
}

func TestOpenAndMigrate_SQLite(t *testing.T) {
	cfg := openSQLite(t)

	var observed []string
	db, err := Open(cfg, func(op string, _ time.Duration) { observed = append(observed, op) })
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, AutoMigrate(db))

	for _, m := range Models {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}

	user := models.User{
		Username:  "planner",
		Password:  "hash",
		UserType:  models.UserRoleClient,
		Skills:    models.StringList{"catering", "decor"},
		Portfolio: []models.PortfolioEntry{{Title: "Gala", Description: "300 guests"}},
	}
	require.NoError(t, db.Create(&user).Error)

	var loaded models.User
	require.NoError(t, db.First(&loaded, user.ID).Error)
	assert.Equal(t, models.StringList{"catering", "decor"}, loaded.Skills)
	require.Len(t, loaded.Portfolio, 1)
	assert.Equal(t, "Gala", loaded.Portfolio[0].Title)

	assert.Contains(t, observed, "INSERT")
	assert.Contains(t, observed, "SELECT")
}

func TestEscrowMilestoneIDIsUnique(t *testing.T) {
	cfg := openSQLite(t)
	db, err := Open(cfg, nil)
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, AutoMigrate(db))

	client := models.User{Username: "c", Password: "x", UserType: models.UserRoleClient}
	require.NoError(t, db.Create(&client).Error)
	job := models.Job{Title: "t", Description: "d", Budget: 1, Category: models.JobCategoryOther, ClientID: client.ID, Status: models.JobStatusOpen}
	require.NoError(t, db.Create(&job).Error)
	ms := models.Milestone{JobID: job.ID, Title: "m", Description: "d", Amount: 10, Status: models.MilestoneStatusPending}
	require.NoError(t, db.Create(&ms).Error)

	require.NoError(t, db.Create(&models.EscrowTransaction{MilestoneID: ms.ID, Amount: 10, Status: models.EscrowStatusHeld}).Error)
	assert.Error(t, db.Create(&models.EscrowTransaction{MilestoneID: ms.ID, Amount: 10, Status: models.EscrowStatusHeld}).Error)
}
