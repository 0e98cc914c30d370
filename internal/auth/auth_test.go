package auth

import (
	"testing"
	"time"

	"eventhire_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, 42, models.UserRoleVendor, "sess-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, models.UserRoleVendor, claims.Role)
	assert.Equal(t, "sess-1", claims.SessionID())
}

func TestToken_Rejected(t *testing.T) {
	expired, err := GenerateToken(testSecret, 1, models.UserRoleClient, "s", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = ParseToken(testSecret, expired)
	assert.ErrorIs(t, err, ErrTokenExpired)

	valid, err := GenerateToken(testSecret, 1, models.UserRoleClient, "s", time.Now().Add(time.Minute))
	require.NoError(t, err)
	_, err = ParseToken("other-secret", valid)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(testSecret, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSession, err := GenerateToken(testSecret, 1, models.UserRoleClient, "", time.Now().Add(time.Minute))
	require.NoError(t, err)
	_, err = ParseToken(testSecret, noSession)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(models.UserRoleClient, PermJobsCreate))
	assert.False(t, HasPermission(models.UserRoleVendor, PermJobsCreate))
	assert.True(t, HasPermission(models.UserRoleVendor, PermProposalsCreate))
	assert.False(t, HasPermission(models.UserRoleClient, PermProposalsCreate))
	assert.False(t, HasPermission(models.UserRole("admin"), PermMessagesSend))
}
