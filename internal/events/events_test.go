package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"eventhire_backend/internal/models"
	"eventhire_backend/internal/repositories"
	"eventhire_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestoneRoutingKey(t *testing.T) {
	assert.Equal(t, MilestoneCompleted, MilestoneRoutingKey(models.MilestoneStatusCompleted))
	assert.Equal(t, MilestoneApproved, MilestoneRoutingKey(models.MilestoneStatusApproved))
	assert.Equal(t, MilestoneReleased, MilestoneRoutingKey(models.MilestoneStatusReleased))
}

func TestEnqueue_WritesPendingEvent(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := repositories.NewOutboxRepository()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, Enqueue(db, repo, "escrow", 7, EscrowHeld, EscrowPayload{
		EscrowID:    7,
		MilestoneID: 3,
		Status:      models.EscrowStatusHeld,
		Amount:      200,
		At:          at,
	}))

	pending, err := repo.FetchPending(db, 10, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, pending, 1)

	event := pending[0]
	assert.Equal(t, "escrow", event.AggregateType)
	assert.EqualValues(t, 7, event.AggregateID)
	assert.Equal(t, EscrowHeld, event.RoutingKey)
	assert.Equal(t, models.OutboxStatusPending, event.Status)

	var payload EscrowPayload
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.EqualValues(t, 3, payload.MilestoneID)
	assert.Equal(t, 200.0, payload.Amount)
	assert.True(t, at.Equal(payload.At))
}

func TestEnqueue_RejectsUnmarshalablePayload(t *testing.T) {
	db := testutil.OpenTestDB(t)

	err := Enqueue(db, repositories.NewOutboxRepository(), "milestone", 1, MilestoneCompleted, map[string]interface{}{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), MilestoneCompleted)
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher()
	assert.NoError(t, p.Publish(context.Background(), MilestoneApproved, []byte(`{"milestoneId":1}`)))
	assert.NoError(t, p.Close())
}
