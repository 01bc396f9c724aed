package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/password"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/storage/memory"
)

func setupService(t *testing.T) *AdminService {
	t.Helper()
	store, err := memory.NewSeeded(password.GetHash)
	require.NoError(t, err)
	return New(store, store)
}

func TestListUsers(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	page, err := svc.ListUsers(ctx, 3, 0)
	require.NoError(t, err)
	require.Len(t, page.Accounts, 3)
	require.Equal(t, 5, page.Total)

	rest, err := svc.ListUsers(ctx, 3, 3)
	require.NoError(t, err)
	require.Len(t, rest.Accounts, 2)
	require.Equal(t, 5, rest.Total)
}

func TestCollectStats(t *testing.T) {
	svc := setupService(t)

	stats, err := svc.CollectStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, stats.TotalAccounts)
	// mike помечен неактивным в наборе данных.
	require.Equal(t, 4, stats.ActiveAccounts)
	// У admin подписки нет, подписка mike в статусе cancelled.
	require.Equal(t, 3, stats.ActiveSubscriptions)
	require.Equal(t, 4, stats.NotesByStatus["processed"])
	require.Equal(t, 1, stats.NotesByStatus["pending"])
}
