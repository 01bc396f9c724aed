package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/migrations"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/storage"
)

func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := New(dsn)
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(store.DB, migrationsPath))

	cleanup := func() {
		_ = store.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return store, cleanup
}

func TestStorage_CreateAndFindAccount(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, CheckDatabaseReady(store))

	now := time.Now().UTC().Truncate(time.Second)
	id, err := store.CreateAccount(context.Background(), models.Account{
		Email:        "new@x.com",
		Name:         "New User",
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		LastLogin:    now,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	acc, err := store.FindByEmail(context.Background(), "NEW@X.COM")
	require.NoError(t, err)
	assert.Equal(t, id, acc.ID)
	assert.Equal(t, "new@x.com", acc.Email)
	assert.Equal(t, models.RoleUser, acc.Role)
	assert.Nil(t, acc.Subscription)

	_, err = store.FindByEmail(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestStorage_DuplicateEmail(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	now := time.Now().UTC()
	account := models.Account{
		Email:        "dup@x.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		LastLogin:    now,
	}

	_, err := store.CreateAccount(context.Background(), account)
	require.NoError(t, err)

	account.Email = "Dup@X.com"
	_, err = store.CreateAccount(context.Background(), account)
	assert.ErrorIs(t, err, storage.ErrEmailTaken)
}

func TestStorage_UpdateSubscription(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	now := time.Now().UTC().Truncate(time.Second)
	id, err := store.CreateAccount(context.Background(), models.Account{
		Email:        "sub@x.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		LastLogin:    now,
	})
	require.NoError(t, err)

	err = store.UpdateSubscription(context.Background(), id, models.Subscription{
		Plan:      "Pro",
		Status:    models.SubscriptionActive,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 30),
	})
	require.NoError(t, err)

	acc, err := store.GetAccount(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, acc.Subscription)
	assert.Equal(t, "Pro", acc.Subscription.Plan)
	assert.Equal(t, models.SubscriptionActive, acc.Subscription.Status)

	err = store.UpdateSubscription(context.Background(), "00000000-0000-0000-0000-000000000000", models.Subscription{})
	assert.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestStorage_ListAndCount(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	now := time.Now().UTC()
	emails := []string{"a@x.com", "b@x.com", "c@x.com"}
	for _, email := range emails {
		_, err := store.CreateAccount(context.Background(), models.Account{
			Email:        email,
			PasswordHash: "hashedpassword",
			Role:         models.RoleUser,
			IsActive:     true,
			CreatedAt:    now,
			LastLogin:    now,
		})
		require.NoError(t, err)
	}

	count, err := store.CountAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	page, err := store.ListAccounts(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}
