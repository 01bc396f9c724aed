package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

// ListVoiceNotes возвращает все голосовые заметки для админ-панели.
func (s *Storage) ListVoiceNotes(ctx context.Context, limit, offset int) ([]*models.VoiceNote, error) {
	const op = "storage.memory.ListVoiceNotes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if offset >= len(s.notes) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(s.notes) {
		end = len(s.notes)
	}
	result := make([]*models.VoiceNote, 0, end-offset)
	for i := offset; i < end; i++ {
		note := s.notes[i]
		result = append(result, &note)
	}
	return result, nil
}

// ListVoiceNotesByAccount возвращает заметки одной учётной записи.
func (s *Storage) ListVoiceNotesByAccount(ctx context.Context, accountID string) ([]*models.VoiceNote, error) {
	const op = "storage.memory.ListVoiceNotesByAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.VoiceNote
	for i := range s.notes {
		if s.notes[i].AccountID == accountID {
			note := s.notes[i]
			result = append(result, &note)
		}
	}
	return result, nil
}

// CountVoiceNotesByStatus возвращает число заметок в каждом статусе
// для карточек статистики админ-панели.
func (s *Storage) CountVoiceNotesByStatus(ctx context.Context) (map[string]int, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for i := range s.notes {
		counts[s.notes[i].Status]++
	}
	return counts, nil
}

// ListInvoicesByAccount возвращает историю счетов учётной записи.
func (s *Storage) ListInvoicesByAccount(ctx context.Context, accountID string) ([]*models.Invoice, error) {
	const op = "storage.memory.ListInvoicesByAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Invoice
	for i := range s.invoices {
		if s.invoices[i].AccountID == accountID {
			inv := s.invoices[i]
			result = append(result, &inv)
		}
	}
	return result, nil
}

// CreateInvoice добавляет счёт, выписанный при завершении оформления подписки.
func (s *Storage) CreateInvoice(ctx context.Context, invoice models.Invoice) (string, error) {
	const op = "storage.memory.CreateInvoice"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now().UTC()
	}
	s.invoices = append(s.invoices, invoice)
	return invoice.ID, nil
}
