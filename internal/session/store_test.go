package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/cache"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/config"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	c, err := cache.InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
	})
	require.NoError(t, err)

	return New(c, 7*24*time.Hour, time.Hour), mr
}

func testAccount() *models.Account {
	return &models.Account{
		ID:    "acc-1",
		Email: "user@example.com",
		Name:  "John Doe",
		Role:  models.RoleUser,
		Subscription: &models.Subscription{
			Plan:      "Pro",
			Status:    models.SubscriptionActive,
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		IsActive: true,
	}
}

func TestSet_WritesBothSlots(t *testing.T) {
	store, mr := setupStore(t)

	require.NoError(t, store.Set(context.Background(), testAccount()))

	assert.True(t, mr.Exists("session:current:acc-1"))
	assert.True(t, mr.Exists("session:guard:acc-1"))

	// TTL страховочного канала короче долговременного слота.
	assert.Greater(t, mr.TTL("session:current:acc-1"), mr.TTL("session:guard:acc-1"))
}

func TestGet_RoundTripsSnapshot(t *testing.T) {
	store, _ := setupStore(t)

	original := testAccount()
	require.NoError(t, store.Set(context.Background(), original))

	got, err := store.Get(context.Background(), "acc-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, original.Email, got.Email)
	require.NotNil(t, got.Subscription)
	assert.Equal(t, models.SubscriptionActive, got.Subscription.Status)

	guard, err := store.GetGuard(context.Background(), "acc-1")
	require.NoError(t, err)
	require.NotNil(t, guard)
	assert.Equal(t, original.Role, guard.Role)
}

func TestGet_MissingIsEmptySession(t *testing.T) {
	store, _ := setupStore(t)

	got, err := store.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGet_MalformedIsEmptySession(t *testing.T) {
	store, mr := setupStore(t)

	require.NoError(t, mr.Set("session:current:acc-1", "{not json"))

	got, err := store.Get(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClear_RemovesBothSlots(t *testing.T) {
	store, mr := setupStore(t)

	require.NoError(t, store.Set(context.Background(), testAccount()))
	require.NoError(t, store.Clear(context.Background(), "acc-1"))

	assert.False(t, mr.Exists("session:current:acc-1"))
	assert.False(t, mr.Exists("session:guard:acc-1"))
}
