// Package memory реализует хранилище учётных записей, голосовых заметок
// и счетов в памяти процесса. Это штатный режим демонстрационного стенда:
// данные сеются при старте и живут до завершения процесса.
package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/storage"
)

// Storage хранит все демонстрационные данные под одним мьютексом.
// Снаружи отдаются только копии записей, чтобы снимок сессии
// не становился живой ссылкой на строку хранилища.
type Storage struct {
	mu       sync.RWMutex
	accounts []models.Account
	notes    []models.VoiceNote
	invoices []models.Invoice
}

// New создает пустое хранилище. Для стенда обычно используется NewSeeded.
func New() *Storage {
	return &Storage{}
}

// NewSeeded создает хранилище с каноничным демонстрационным набором:
// пять пользовательских учётных записей и администратор. Пароль всех
// демо-записей — "password", он хэшируется переданной функцией.
func NewSeeded(hash func(string) (string, error)) (*Storage, error) {
	const op = "storage.memory.NewSeeded"

	demoHash, err := hash("password")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := New()
	s.accounts = seedAccounts(demoHash)
	s.notes = seedVoiceNotes(s.accounts)
	s.invoices = seedInvoices(s.accounts)
	return s, nil
}

// FindByEmail возвращает учётную запись по email. Email сравнивается
// без учёта регистра, хранится как введен.
func (s *Storage) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.memory.FindByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.accounts {
		if strings.EqualFold(s.accounts[i].Email, email) {
			acc := cloneAccount(s.accounts[i])
			return &acc, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
}

// Exists сообщает, занят ли email.
func (s *Storage) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateAccount сохраняет новую учётную запись и возвращает её ID.
// Email должен быть свободен, иначе возвращается storage.ErrEmailTaken.
func (s *Storage) CreateAccount(ctx context.Context, account models.Account) (string, error) {
	const op = "storage.memory.CreateAccount"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if strings.EqualFold(s.accounts[i].Email, account.Email) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	s.accounts = append(s.accounts, cloneAccount(account))
	return account.ID, nil
}

// GetAccount возвращает учётную запись по её ID.
func (s *Storage) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	const op = "storage.memory.GetAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			acc := cloneAccount(s.accounts[i])
			return &acc, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
}

// UpdateSubscription записывает подписку в каноничную запись учётной записи.
func (s *Storage) UpdateSubscription(ctx context.Context, accountID string, sub models.Subscription) error {
	const op = "storage.memory.UpdateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			subCopy := sub
			s.accounts[i].Subscription = &subCopy
			return nil
		}
	}
	return fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
}

// UpdateLastLogin обновляет время последнего входа.
func (s *Storage) UpdateLastLogin(ctx context.Context, accountID string, at time.Time) error {
	const op = "storage.memory.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			s.accounts[i].LastLogin = at
			return nil
		}
	}
	return fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
}

// ListAccounts возвращает учётные записи с пагинацией для админ-панели.
func (s *Storage) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	const op = "storage.memory.ListAccounts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if offset >= len(s.accounts) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(s.accounts) {
		end = len(s.accounts)
	}
	result := make([]*models.Account, 0, end-offset)
	for i := offset; i < end; i++ {
		acc := cloneAccount(s.accounts[i])
		result = append(result, &acc)
	}
	return result, nil
}

// CountAccounts возвращает общее число учётных записей.
func (s *Storage) CountAccounts(ctx context.Context) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts), nil
}

// CountActiveAccounts возвращает число учётных записей с is_active = true.
func (s *Storage) CountActiveAccounts(ctx context.Context) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for i := range s.accounts {
		if s.accounts[i].IsActive {
			count++
		}
	}
	return count, nil
}

// CountActiveSubscriptions возвращает число действующих подписок.
func (s *Storage) CountActiveSubscriptions(ctx context.Context) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for i := range s.accounts {
		if s.accounts[i].HasActiveSubscription() {
			count++
		}
	}
	return count, nil
}

func cloneAccount(a models.Account) models.Account {
	if a.Subscription != nil {
		sub := *a.Subscription
		a.Subscription = &sub
	}
	return a
}
