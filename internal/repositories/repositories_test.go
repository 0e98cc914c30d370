package repositories

import (
	"errors"
	"testing"
	"time"

	"eventhire_backend/internal/models"
	"eventhire_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewUserRepository()

	require.NoError(t, repo.Create(db, &models.User{Username: "sam", Password: "x", UserType: models.UserRoleClient}))
	err := repo.Create(db, &models.User{Username: "sam", Password: "y", UserType: models.UserRoleVendor})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = repo.FindByUsername(db, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewUserRepository()
	user := testutil.CreateUser(t, db, "vera", "secret1", models.UserRoleVendor)

	err := repo.UpdateProfile(db, user.ID, map[string]interface{}{
		"description": "Lighting tech",
		"skills":      models.StringList{"lighting", "rigging"},
	})
	require.NoError(t, err)

	loaded, err := repo.FindByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lighting tech", loaded.Description)
	assert.Equal(t, models.StringList{"lighting", "rigging"}, loaded.Skills)
	assert.Equal(t, "vera", loaded.FullName, "untouched columns stay")

	assert.ErrorIs(t, repo.UpdateProfile(db, 9999, map[string]interface{}{"full_name": "x"}), ErrUserNotFound)
}

func TestMilestoneRepository_UpdateStatusStampsAndGuards(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewMilestoneRepository()
	client := testutil.CreateUser(t, db, "cli", "secret1", models.UserRoleClient)
	job := testutil.CreateJob(t, db, client.ID, 500)
	ms := testutil.CreateMilestone(t, db, job.ID, 200)

	now := time.Now().UTC()
	require.NoError(t, repo.UpdateStatus(db, ms.ID, models.MilestoneStatusPending, models.MilestoneStatusCompleted, now))

	loaded, err := repo.FindByID(db, ms.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MilestoneStatusCompleted, loaded.Status)
	require.NotNil(t, loaded.CompletedAt)
	assert.Nil(t, loaded.ApprovedAt)

	err = repo.UpdateStatus(db, ms.ID, models.MilestoneStatusPending, models.MilestoneStatusCompleted, now)
	assert.ErrorIs(t, err, ErrMilestoneStatusChanged)

	_, err = repo.FindByID(db, 9999)
	assert.ErrorIs(t, err, ErrMilestoneNotFound)
}

func TestEscrowRepository_UniquePerMilestone(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewEscrowRepository()
	client := testutil.CreateUser(t, db, "cli", "secret1", models.UserRoleClient)
	job := testutil.CreateJob(t, db, client.ID, 500)
	ms := testutil.CreateMilestone(t, db, job.ID, 200)

	escrow := &models.EscrowTransaction{MilestoneID: ms.ID, Amount: 200, Status: models.EscrowStatusHeld}
	require.NoError(t, repo.Create(db, escrow))
	err := repo.Create(db, &models.EscrowTransaction{MilestoneID: ms.ID, Amount: 200, Status: models.EscrowStatusHeld})
	assert.ErrorIs(t, err, ErrEscrowAlreadyExists)

	require.NoError(t, repo.UpdateStatus(db, escrow.ID, models.EscrowStatusReleased, time.Now()))
	loaded, err := repo.FindByID(db, escrow.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EscrowStatusReleased, loaded.Status)
	assert.NotNil(t, loaded.ReleasedAt)
	assert.Nil(t, loaded.RefundedAt)
}

func TestMessageRepository_ConversationBothDirections(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewMessageRepository()
	a := testutil.CreateUser(t, db, "a", "secret1", models.UserRoleClient)
	b := testutil.CreateUser(t, db, "b", "secret1", models.UserRoleVendor)
	c := testutil.CreateUser(t, db, "c", "secret1", models.UserRoleVendor)

	require.NoError(t, repo.Create(db, &models.Message{SenderID: a.ID, ReceiverID: b.ID, Content: "hi"}))
	require.NoError(t, repo.Create(db, &models.Message{SenderID: b.ID, ReceiverID: a.ID, Content: "hello"}))
	require.NoError(t, repo.Create(db, &models.Message{SenderID: c.ID, ReceiverID: a.ID, Content: "spam"}))

	msgs, err := repo.FindConversation(db, a.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, "hello", msgs[1].Content)
}

func TestSessionRepository_Expiry(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewSessionRepository()
	user := testutil.CreateUser(t, db, "u", "secret1", models.UserRoleClient)
	now := time.Now().UTC()

	require.NoError(t, repo.Create(db, &models.Session{ID: "live", UserID: user.ID, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(db, &models.Session{ID: "dead", UserID: user.ID, ExpiresAt: now.Add(-time.Hour)}))

	_, err := repo.FindActive(db, "live", now)
	assert.NoError(t, err)
	_, err = repo.FindActive(db, "dead", now)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	removed, err := repo.DeleteExpired(db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestOutboxRepository_BackoffAndFailure(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewOutboxRepository()
	now := time.Now().UTC()

	event := &models.OutboxEvent{AggregateType: "milestone", AggregateID: 1, RoutingKey: "milestone.completed", Payload: []byte(`{}`)}
	require.NoError(t, repo.Insert(db, event))

	pending, err := repo.FetchPending(db, 10, now)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, repo.MarkFailed(db, &pending[0], errors.New("broker down"), 2, now))

	pending, err = repo.FetchPending(db, 10, now)
	require.NoError(t, err)
	assert.Empty(t, pending, "retry is scheduled in the future")

	pending, err = repo.FetchPending(db, 10, now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].RetryCount)

	require.NoError(t, repo.MarkFailed(db, &pending[0], errors.New("broker down"), 2, now))
	var stored models.OutboxEvent
	require.NoError(t, db.First(&stored, event.ID).Error)
	assert.Equal(t, models.OutboxStatusFailed, stored.Status)
	assert.Equal(t, "broker down", stored.LastError)
}
