// Package voicenotes отдаёт голосовые записи: собственные записи
// пользователя для личного кабинета и общий список с пагинацией для
// админ-панели.
package voicenotes

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

// VoiceNoteRepository описывает чтение голосовых записей из хранилища.
type VoiceNoteRepository interface {
	ListVoiceNotes(ctx context.Context, limit, offset int) ([]*models.VoiceNote, error)
	ListVoiceNotesByAccount(ctx context.Context, accountID string) ([]*models.VoiceNote, error)
}

// VoiceNotesService отдаёт голосовые записи.
type VoiceNotesService struct {
	notes VoiceNoteRepository
}

// New создает VoiceNotesService.
func New(notes VoiceNoteRepository) *VoiceNotesService {
	return &VoiceNotesService{notes: notes}
}

// ListForAccount возвращает записи одной учётной записи.
func (s *VoiceNotesService) ListForAccount(ctx context.Context, accountID string) ([]*models.VoiceNote, error) {
	const op = "voicenotes.ListForAccount"

	notes, err := s.notes.ListVoiceNotesByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return notes, nil
}

// ListAll возвращает записи всех пользователей с пагинацией.
func (s *VoiceNotesService) ListAll(ctx context.Context, limit, offset int) ([]*models.VoiceNote, error) {
	const op = "voicenotes.ListAll"

	notes, err := s.notes.ListVoiceNotes(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return notes, nil
}
