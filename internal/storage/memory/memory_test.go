package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/password"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/storage"
)

func setupSeeded(t *testing.T) *Storage {
	t.Helper()
	s, err := NewSeeded(password.GetHash)
	require.NoError(t, err)
	return s
}

func TestFindByEmail(t *testing.T) {
	s := setupSeeded(t)

	tests := []struct {
		name     string
		email    string
		wantRole string
		wantErr  bool
	}{
		{
			name:     "known user",
			email:    "user@example.com",
			wantRole: models.RoleUser,
		},
		{
			name:     "known admin",
			email:    "admin@example.com",
			wantRole: models.RoleAdmin,
		},
		{
			name:     "case insensitive lookup",
			email:    "USER@EXAMPLE.COM",
			wantRole: models.RoleUser,
		},
		{
			name:    "unknown email",
			email:   "nobody@example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := s.FindByEmail(context.Background(), tt.email)
			if tt.wantErr {
				require.ErrorIs(t, err, storage.ErrAccountNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, acc.Role)
		})
	}
}

func TestFindByEmail_ReturnsCopy(t *testing.T) {
	s := setupSeeded(t)

	first, err := s.FindByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, first.Subscription)

	// Мутация снимка не должна менять каноничную запись.
	first.Subscription.Status = models.SubscriptionCancelled
	first.Name = "Hacked"

	second, err := s.FindByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, second.Subscription.Status)
	assert.Equal(t, "John Doe", second.Name)
}

func TestCreateAccount(t *testing.T) {
	s := setupSeeded(t)

	newAccount := models.Account{
		Email:     "new@x.com",
		Name:      "New User",
		Role:      models.RoleUser,
		CreatedAt: time.Now().UTC(),
		LastLogin: time.Now().UTC(),
		IsActive:  true,
	}

	id, err := s.CreateAccount(context.Background(), newAccount)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	exists, err := s.Exists(context.Background(), "new@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	s := setupSeeded(t)

	_, err := s.CreateAccount(context.Background(), models.Account{
		Email: "User@Example.com",
		Role:  models.RoleUser,
	})
	require.ErrorIs(t, err, storage.ErrEmailTaken)
}

func TestUpdateSubscription(t *testing.T) {
	s := setupSeeded(t)

	admin, err := s.FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	require.Nil(t, admin.Subscription)

	start := time.Now().UTC()
	err = s.UpdateSubscription(context.Background(), admin.ID, models.Subscription{
		Plan:      "Pro",
		Status:    models.SubscriptionActive,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 30),
	})
	require.NoError(t, err)

	updated, err := s.GetAccount(context.Background(), admin.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Subscription)
	assert.Equal(t, "Pro", updated.Subscription.Plan)

	err = s.UpdateSubscription(context.Background(), "missing-id", models.Subscription{})
	assert.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestListAccounts_Pagination(t *testing.T) {
	s := setupSeeded(t)

	total, err := s.CountAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	page, err := s.ListAccounts(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := s.ListAccounts(context.Background(), 10, 4)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	empty, err := s.ListAccounts(context.Background(), 10, 100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestVoiceNotes(t *testing.T) {
	s := setupSeeded(t)

	all, err := s.ListVoiceNotes(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	mine, err := s.ListVoiceNotesByAccount(context.Background(), SeedUserID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	counts, err := s.CountVoiceNotesByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, counts[models.NoteProcessed])
	assert.Equal(t, 1, counts[models.NotePending])
}

func TestInvoices(t *testing.T) {
	s := setupSeeded(t)

	invoices, err := s.ListInvoicesByAccount(context.Background(), SeedUserID)
	require.NoError(t, err)
	require.Len(t, invoices, 3)

	id, err := s.CreateInvoice(context.Background(), models.Invoice{
		AccountID:     SeedUserID,
		Amount:        15.99,
		Status:        models.InvoicePaid,
		Plan:          "Pro",
		BillingPeriod: models.BillingMonthly,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	invoices, err = s.ListInvoicesByAccount(context.Background(), SeedUserID)
	require.NoError(t, err)
	assert.Len(t, invoices, 4)
}

func TestContextCancelled(t *testing.T) {
	s := setupSeeded(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FindByEmail(ctx, "user@example.com")
	assert.ErrorIs(t, err, context.Canceled)
}
