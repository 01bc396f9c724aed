package models

import "time"

// Статусы обработки голосовой заметки.
const (
	NotePending   = "pending"
	NoteProcessed = "processed"
	NoteFailed    = "failed"
)

// VoiceNote представляет голосовую заметку пользователя вместе
// с результатом расшифровки. Транскрипция пуста, пока заметка
// не обработана.
type VoiceNote struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	AccountEmail  string    `json:"account_email"`
	Duration      int       `json:"duration"` // Длительность в секундах
	Timestamp     time.Time `json:"timestamp"`
	Transcription string    `json:"transcription,omitempty"`
	Status        string    `json:"status"` // pending, processed или failed
}
