package services

import (
	"context"
	"net/http"
	"testing"

	"eventhire_backend/internal/models"
	"eventhire_backend/internal/repositories"
	"eventhire_backend/internal/services/dto"
	"eventhire_backend/internal/testutil"
	"eventhire_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type milestoneFixture struct {
	db        *gorm.DB
	svc       MilestoneService
	client    dto.Actor
	other     dto.Actor
	vendor    dto.Actor
	job       *models.Job
	milestone *models.Milestone
}

func newMilestoneFixture(t *testing.T) *milestoneFixture {
	db := testutil.OpenTestDB(t)

	client := testutil.CreateUser(t, db, "client", "secret1", models.UserRoleClient)
	other := testutil.CreateUser(t, db, "other-client", "secret1", models.UserRoleClient)
	vendor := testutil.CreateUser(t, db, "vendor", "secret1", models.UserRoleVendor)
	job := testutil.CreateJob(t, db, client.ID, 500)
	milestone := testutil.CreateMilestone(t, db, job.ID, 200)

	svc := NewMilestoneService(
		repositories.NewMilestoneRepository(),
		repositories.NewEscrowRepository(),
		repositories.NewJobRepository(),
		repositories.NewOutboxRepository(),
	)

	return &milestoneFixture{
		db:        db,
		svc:       svc,
		client:    dto.Actor{UserID: client.ID, Role: models.UserRoleClient},
		other:     dto.Actor{UserID: other.ID, Role: models.UserRoleClient},
		vendor:    dto.Actor{UserID: vendor.ID, Role: models.UserRoleVendor},
		job:       job,
		milestone: milestone,
	}
}

func (f *milestoneFixture) move(t *testing.T, actor dto.Actor, status models.MilestoneStatus) *models.Milestone {
	t.Helper()
	m, err := f.svc.UpdateStatus(context.Background(), f.db, actor, f.milestone.ID, status)
	require.NoError(t, err, "move to %s", status)
	return m
}

func (f *milestoneFixture) escrows(t *testing.T) []models.EscrowTransaction {
	t.Helper()
	var rows []models.EscrowTransaction
	require.NoError(t, f.db.Where("milestone_id = ?", f.milestone.ID).Find(&rows).Error)
	return rows
}

func requireAppError(t *testing.T, err error, status int, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	assert.Equal(t, status, appErr.HTTPCode)
	assert.Equal(t, code, appErr.Code)
}

func TestMilestoneService_FullFlow(t *testing.T) {
	f := newMilestoneFixture(t)

	completed := f.move(t, f.vendor, models.MilestoneStatusCompleted)
	assert.Equal(t, models.MilestoneStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
	assert.Empty(t, f.escrows(t))

	approved := f.move(t, f.client, models.MilestoneStatusApproved)
	assert.Equal(t, models.MilestoneStatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)

	escrows := f.escrows(t)
	require.Len(t, escrows, 1, "approval creates exactly one escrow")
	assert.Equal(t, 200.0, escrows[0].Amount)
	assert.Equal(t, models.EscrowStatusHeld, escrows[0].Status)
	assert.Nil(t, escrows[0].ReleasedAt)

	released := f.move(t, f.client, models.MilestoneStatusReleased)
	assert.Equal(t, models.MilestoneStatusReleased, released.Status)
	assert.NotNil(t, released.ReleasedAt)

	escrows = f.escrows(t)
	require.Len(t, escrows, 1)
	assert.Equal(t, models.EscrowStatusReleased, escrows[0].Status)
	assert.NotNil(t, escrows[0].ReleasedAt)

	var keys []string
	require.NoError(t, f.db.Model(&models.OutboxEvent{}).Order("id").Pluck("routing_key", &keys).Error)
	assert.Equal(t, []string{
		"milestone.completed",
		"milestone.approved",
		"escrow.held",
		"milestone.released",
		"escrow.released",
	}, keys)
}

func TestMilestoneService_RejectsSkippedTransitions(t *testing.T) {
	f := newMilestoneFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStatus(ctx, f.db, f.client, f.milestone.ID, models.MilestoneStatusApproved)
	requireAppError(t, err, http.StatusBadRequest, apperrors.CodeInvalidStatus)

	_, err = f.svc.UpdateStatus(ctx, f.db, f.client, f.milestone.ID, models.MilestoneStatusReleased)
	requireAppError(t, err, http.StatusBadRequest, apperrors.CodeInvalidStatus)

	assert.Empty(t, f.escrows(t))

	f.move(t, f.vendor, models.MilestoneStatusCompleted)
	_, err = f.svc.UpdateStatus(ctx, f.db, f.vendor, f.milestone.ID, models.MilestoneStatusCompleted)
	requireAppError(t, err, http.StatusBadRequest, apperrors.CodeInvalidStatus)
}

func TestMilestoneService_ActorRules(t *testing.T) {
	f := newMilestoneFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStatus(ctx, f.db, f.client, f.milestone.ID, models.MilestoneStatusCompleted)
	requireAppError(t, err, http.StatusForbidden, apperrors.CodeForbidden)

	f.move(t, f.vendor, models.MilestoneStatusCompleted)

	_, err = f.svc.UpdateStatus(ctx, f.db, f.vendor, f.milestone.ID, models.MilestoneStatusApproved)
	requireAppError(t, err, http.StatusForbidden, apperrors.CodeForbidden)

	_, err = f.svc.UpdateStatus(ctx, f.db, f.other, f.milestone.ID, models.MilestoneStatusApproved)
	requireAppError(t, err, http.StatusForbidden, apperrors.CodeForbidden)

	assert.Empty(t, f.escrows(t), "rejected transitions have no side effects")
}

func TestMilestoneService_NotFoundAndInvalidValue(t *testing.T) {
	f := newMilestoneFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStatus(ctx, f.db, f.vendor, 9999, models.MilestoneStatusCompleted)
	requireAppError(t, err, http.StatusNotFound, apperrors.CodeNotFound)

	_, err = f.svc.UpdateStatus(ctx, f.db, f.client, f.milestone.ID, models.MilestoneStatus("refunded"))
	requireAppError(t, err, http.StatusBadRequest, apperrors.CodeValidationFailed)

	_, err = f.svc.UpdateStatus(ctx, f.db, f.client, 9999, models.MilestoneStatus("refunded"))
	requireAppError(t, err, http.StatusNotFound, apperrors.CodeNotFound)
}

func TestMilestoneService_ReleaseWithoutEscrowIsNoop(t *testing.T) {
	f := newMilestoneFixture(t)

	// Этап, одобренный в обход сервиса, без записи эскроу.
	require.NoError(t, f.db.Model(&models.Milestone{}).
		Where("id = ?", f.milestone.ID).
		Update("status", models.MilestoneStatusApproved).Error)

	released := f.move(t, f.client, models.MilestoneStatusReleased)
	assert.Equal(t, models.MilestoneStatusReleased, released.Status)
	assert.Empty(t, f.escrows(t))
}

func TestMilestoneService_CreateAndList(t *testing.T) {
	f := newMilestoneFixture(t)
	ctx := context.Background()
	req := &dto.CreateMilestoneRequest{Title: "Final", Description: "Event day", Amount: 300}

	_, err := f.svc.CreateMilestone(ctx, f.db, f.vendor, f.job.ID, req)
	requireAppError(t, err, http.StatusForbidden, apperrors.CodeForbidden)

	_, err = f.svc.CreateMilestone(ctx, f.db, f.other, f.job.ID, req)
	requireAppError(t, err, http.StatusForbidden, apperrors.CodeForbidden)

	_, err = f.svc.CreateMilestone(ctx, f.db, f.client, 9999, req)
	requireAppError(t, err, http.StatusNotFound, apperrors.CodeNotFound)

	created, err := f.svc.CreateMilestone(ctx, f.db, f.client, f.job.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.MilestoneStatusPending, created.Status)
	assert.Equal(t, 300.0, created.Amount)

	list, err := f.svc.ListMilestones(ctx, f.db, f.job.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, f.milestone.ID, list[0].ID)
	assert.Equal(t, created.ID, list[1].ID)

	_, err = f.svc.ListMilestones(ctx, f.db, 9999)
	requireAppError(t, err, http.StatusNotFound, apperrors.CodeNotFound)
}

func TestMilestoneService_GetEscrow(t *testing.T) {
	f := newMilestoneFixture(t)
	ctx := context.Background()

	f.move(t, f.vendor, models.MilestoneStatusCompleted)
	f.move(t, f.client, models.MilestoneStatusApproved)

	rows, err := f.svc.GetEscrow(ctx, f.db, f.client, f.milestone.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows, err = f.svc.GetEscrow(ctx, f.db, f.vendor, f.milestone.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = f.svc.GetEscrow(ctx, f.db, f.other, f.milestone.ID)
	requireAppError(t, err, http.StatusForbidden, apperrors.CodeForbidden)
}
