// Package admin реализует операции админ-панели: список учётных
// записей с пагинацией и сводные счётчики стенда. Панель доступна
// только роли admin; проверку роли выполняет шлюз доступа, сервис ей
// не занимается.
package admin

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

// AccountRepository описывает операции хранилища, нужные админ-панели.
type AccountRepository interface {
	ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error)
	CountAccounts(ctx context.Context) (int, error)
	CountActiveAccounts(ctx context.Context) (int, error)
	CountActiveSubscriptions(ctx context.Context) (int, error)
}

// VoiceNoteRepository считает голосовые записи по статусу обработки.
type VoiceNoteRepository interface {
	CountVoiceNotesByStatus(ctx context.Context) (map[string]int, error)
}

// Stats — сводные счётчики для панели.
type Stats struct {
	TotalAccounts       int            `json:"total_accounts"`
	ActiveAccounts      int            `json:"active_accounts"`
	ActiveSubscriptions int            `json:"active_subscriptions"`
	NotesByStatus       map[string]int `json:"notes_by_status"`
}

// UserPage — страница списка учётных записей.
type UserPage struct {
	Accounts []*models.Account `json:"accounts"`
	Total    int               `json:"total"`
}

// AdminService реализует операции админ-панели.
type AdminService struct {
	accounts AccountRepository
	notes    VoiceNoteRepository
}

// New создает AdminService.
func New(accounts AccountRepository, notes VoiceNoteRepository) *AdminService {
	return &AdminService{
		accounts: accounts,
		notes:    notes,
	}
}

// ListUsers возвращает страницу учётных записей и общее их число.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) (*UserPage, error) {
	const op = "admin.ListUsers"

	accounts, err := s.accounts.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	total, err := s.accounts.CountAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &UserPage{Accounts: accounts, Total: total}, nil
}

// CollectStats собирает сводные счётчики стенда.
func (s *AdminService) CollectStats(ctx context.Context) (*Stats, error) {
	const op = "admin.CollectStats"

	total, err := s.accounts.CountAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	active, err := s.accounts.CountActiveAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	subs, err := s.accounts.CountActiveSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	notes, err := s.notes.CountVoiceNotesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Stats{
		TotalAccounts:       total,
		ActiveAccounts:      active,
		ActiveSubscriptions: subs,
		NotesByStatus:       notes,
	}, nil
}
