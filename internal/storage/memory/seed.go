package memory

import (
	"time"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

// Идентификаторы демо-записей фиксированы, чтобы тесты и примеры
// запросов были воспроизводимы.
const (
	SeedUserID  = "b7f9c1d0-0000-4000-8000-000000000001"
	SeedAdminID = "b7f9c1d0-0000-4000-8000-000000000002"
)

func seedAccounts(passwordHash string) []models.Account {
	now := time.Now().UTC()
	return []models.Account{
		{
			ID:           SeedUserID,
			Email:        "user@example.com",
			Name:         "John Doe",
			Role:         models.RoleUser,
			PasswordHash: passwordHash,
			Subscription: &models.Subscription{
				Plan:      "Pro",
				Status:    models.SubscriptionActive,
				StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			},
			CreatedAt: time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC),
			LastLogin: now,
			IsActive:  true,
		},
		{
			ID:           SeedAdminID,
			Email:        "admin@example.com",
			Name:         "Admin User",
			Role:         models.RoleAdmin,
			PasswordHash: passwordHash,
			CreatedAt:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			LastLogin:    now,
			IsActive:     true,
		},
		{
			ID:           "b7f9c1d0-0000-4000-8000-000000000003",
			Email:        "jane@example.com",
			Name:         "Jane Smith",
			Role:         models.RoleUser,
			PasswordHash: passwordHash,
			Subscription: &models.Subscription{
				Plan:      "Basic",
				Status:    models.SubscriptionActive,
				StartDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			},
			CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			LastLogin: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
		},
		{
			ID:           "b7f9c1d0-0000-4000-8000-000000000004",
			Email:        "mike@example.com",
			Name:         "Mike Johnson",
			Role:         models.RoleUser,
			PasswordHash: passwordHash,
			Subscription: &models.Subscription{
				Plan:      "Enterprise",
				Status:    models.SubscriptionCancelled,
				StartDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			CreatedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
			LastLogin: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
			IsActive:  false,
		},
		{
			ID:           "b7f9c1d0-0000-4000-8000-000000000005",
			Email:        "sarah@example.com",
			Name:         "Sarah Wilson",
			Role:         models.RoleUser,
			PasswordHash: passwordHash,
			Subscription: &models.Subscription{
				Plan:      "Pro",
				Status:    models.SubscriptionActive,
				StartDate: time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			},
			CreatedAt: time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC),
			LastLogin: now,
			IsActive:  true,
		},
	}
}

func seedVoiceNotes(accounts []models.Account) []models.VoiceNote {
	user := accounts[0]
	jane := accounts[2]
	sarah := accounts[4]
	return []models.VoiceNote{
		{
			ID:            "1",
			AccountID:     user.ID,
			AccountEmail:  user.Email,
			Duration:      45,
			Timestamp:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			Transcription: "Hello, this is a test voice message about the new project requirements.",
			Status:        models.NoteProcessed,
		},
		{
			ID:            "2",
			AccountID:     user.ID,
			AccountEmail:  user.Email,
			Duration:      32,
			Timestamp:     time.Date(2024, 1, 15, 11, 15, 0, 0, time.UTC),
			Transcription: "Quick update on the meeting scheduled for tomorrow.",
			Status:        models.NoteProcessed,
		},
		{
			ID:            "3",
			AccountID:     jane.ID,
			AccountEmail:  jane.Email,
			Duration:      67,
			Timestamp:     time.Date(2024, 1, 15, 14, 20, 0, 0, time.UTC),
			Transcription: "Detailed feedback on the latest design mockups and suggestions for improvements.",
			Status:        models.NoteProcessed,
		},
		{
			ID:           "4",
			AccountID:    sarah.ID,
			AccountEmail: sarah.Email,
			Duration:     28,
			Timestamp:    time.Date(2024, 1, 15, 16, 45, 0, 0, time.UTC),
			Status:       models.NotePending,
		},
		{
			ID:            "5",
			AccountID:     user.ID,
			AccountEmail:  user.Email,
			Duration:      55,
			Timestamp:     time.Date(2024, 1, 16, 9, 10, 0, 0, time.UTC),
			Transcription: "Follow-up on yesterday's discussion about the budget allocation.",
			Status:        models.NoteProcessed,
		},
	}
}

func seedInvoices(accounts []models.Account) []models.Invoice {
	user := accounts[0]
	paidJan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	paidFeb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return []models.Invoice{
		{
			ID:            "1",
			AccountID:     user.ID,
			Amount:        19.99,
			Status:        models.InvoicePaid,
			Plan:          "Pro",
			BillingPeriod: models.BillingMonthly,
			CreatedAt:     paidJan,
			PaidAt:        &paidJan,
		},
		{
			ID:            "2",
			AccountID:     user.ID,
			Amount:        19.99,
			Status:        models.InvoicePaid,
			Plan:          "Pro",
			BillingPeriod: models.BillingMonthly,
			CreatedAt:     paidFeb,
			PaidAt:        &paidFeb,
		},
		{
			ID:            "3",
			AccountID:     user.ID,
			Amount:        19.99,
			Status:        models.InvoicePending,
			Plan:          "Pro",
			BillingPeriod: models.BillingMonthly,
			CreatedAt:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}
