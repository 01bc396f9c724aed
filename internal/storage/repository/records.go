package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

// ListVoiceNotes возвращает все голосовые заметки для админ-панели.
func (s *Storage) ListVoiceNotes(ctx context.Context, limit, offset int) ([]*models.VoiceNote, error) {
	const op = "storage.repository.ListVoiceNotes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, account_uid, account_email, duration_seconds,
			      recorded_at, transcription, status
			  FROM voice_notes
			  ORDER BY recorded_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanVoiceNotes(rows, op)
}

// ListVoiceNotesByAccount возвращает заметки одной учётной записи.
func (s *Storage) ListVoiceNotesByAccount(ctx context.Context, accountID string) ([]*models.VoiceNote, error) {
	const op = "storage.repository.ListVoiceNotesByAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, account_uid, account_email, duration_seconds,
			      recorded_at, transcription, status
			  FROM voice_notes
			  WHERE account_uid = $1
			  ORDER BY recorded_at`
	rows, err := s.DB.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanVoiceNotes(rows, op)
}

// CountVoiceNotesByStatus возвращает число заметок в каждом статусе
// для карточек статистики админ-панели.
func (s *Storage) CountVoiceNotesByStatus(ctx context.Context) (map[string]int, error) {
	const op = "storage.repository.CountVoiceNotesByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT status, COUNT(*) FROM voice_notes GROUP BY status`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		counts[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return counts, nil
}

// ListInvoicesByAccount возвращает историю счетов учётной записи.
func (s *Storage) ListInvoicesByAccount(ctx context.Context, accountID string) ([]*models.Invoice, error) {
	const op = "storage.repository.ListInvoicesByAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, account_uid, amount, status, plan, billing_period,
			      created_at, paid_at
			  FROM invoices
			  WHERE account_uid = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Invoice
	for rows.Next() {
		inv := &models.Invoice{}
		var paidAt sql.NullTime
		if err := rows.Scan(&inv.ID, &inv.AccountID, &inv.Amount, &inv.Status,
			&inv.Plan, &inv.BillingPeriod, &inv.CreatedAt, &paidAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if paidAt.Valid {
			t := paidAt.Time
			inv.PaidAt = &t
		}
		result = append(result, inv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateInvoice добавляет счёт, выписанный при завершении оформления подписки.
func (s *Storage) CreateInvoice(ctx context.Context, invoice models.Invoice) (string, error) {
	const op = "storage.repository.CreateInvoice"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO invoices (account_uid, amount, status, plan,
			      billing_period, created_at, paid_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uid;`
	var paidAt sql.NullTime
	if invoice.PaidAt != nil {
		paidAt = sql.NullTime{Time: *invoice.PaidAt, Valid: true}
	}
	if err := s.DB.QueryRowContext(ctx, query,
		invoice.AccountID, invoice.Amount, invoice.Status, invoice.Plan,
		invoice.BillingPeriod, invoice.CreatedAt, paidAt).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

func scanVoiceNotes(rows *sql.Rows, op string) ([]*models.VoiceNote, error) {
	var result []*models.VoiceNote
	for rows.Next() {
		note := &models.VoiceNote{}
		var transcription sql.NullString
		if err := rows.Scan(&note.ID, &note.AccountID, &note.AccountEmail,
			&note.Duration, &note.Timestamp, &transcription, &note.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if transcription.Valid {
			note.Transcription = transcription.String
		}
		result = append(result, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
