package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/storage"
)

// CreateAccount сохраняет новую учётную запись и возвращает её ID.
func (s *Storage) CreateAccount(ctx context.Context, account models.Account) (string, error) {
	const op = "storage.repository.CreateAccount"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	exists, err := s.Exists(ctx, account.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return "", fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
	}

	var newID string
	query := `INSERT INTO accounts (email, name, password_hash, role, is_active,
			      created_at, last_login)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		account.Email, account.Name, account.PasswordHash, account.Role,
		account.IsActive, account.CreatedAt, account.LastLogin).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// FindByEmail возвращает учётную запись по email без учёта регистра.
func (s *Storage) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.repository.FindByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, password_hash, role, is_active,
			      created_at, last_login,
			      subscription_plan, subscription_status,
			      subscription_start, subscription_end
			  FROM accounts
			  WHERE LOWER(email) = LOWER($1)`
	return s.scanAccount(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetAccount возвращает учётную запись по её UID.
func (s *Storage) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	const op = "storage.repository.GetAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, password_hash, role, is_active,
			      created_at, last_login,
			      subscription_plan, subscription_status,
			      subscription_start, subscription_end
			  FROM accounts
			  WHERE uid = $1`
	return s.scanAccount(s.DB.QueryRowContext(ctx, query, accountID), op)
}

// Exists сообщает, занят ли email.
func (s *Storage) Exists(ctx context.Context, email string) (bool, error) {
	const op = "storage.repository.Exists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1))`
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UpdateSubscription записывает подписку в каноничную запись учётной записи.
func (s *Storage) UpdateSubscription(ctx context.Context, accountID string, sub models.Subscription) error {
	const op = "storage.repository.UpdateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET subscription_plan = $1,
			      subscription_status = $2,
			      subscription_start = $3,
			      subscription_end = $4
			  WHERE uid = $5`
	res, err := s.DB.ExecContext(ctx, query,
		sub.Plan, sub.Status, sub.StartDate, sub.EndDate, accountID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}
	return nil
}

// UpdateLastLogin обновляет время последнего входа.
func (s *Storage) UpdateLastLogin(ctx context.Context, accountID string, at time.Time) error {
	const op = "storage.repository.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts SET last_login = $1 WHERE uid = $2`
	_, err := s.DB.ExecContext(ctx, query, at, accountID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListAccounts возвращает учётные записи с пагинацией для админ-панели.
func (s *Storage) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	const op = "storage.repository.ListAccounts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, password_hash, role, is_active,
			      created_at, last_login,
			      subscription_plan, subscription_status,
			      subscription_start, subscription_end
			  FROM accounts
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Account
	for rows.Next() {
		acc, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, acc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountAccounts возвращает общее число учётных записей.
func (s *Storage) CountAccounts(ctx context.Context) (int, error) {
	const op = "storage.repository.CountAccounts"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountActiveAccounts возвращает число учётных записей с is_active = true.
func (s *Storage) CountActiveAccounts(ctx context.Context) (int, error) {
	const op = "storage.repository.CountActiveAccounts"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM accounts WHERE is_active = TRUE`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountActiveSubscriptions возвращает число действующих подписок.
func (s *Storage) CountActiveSubscriptions(ctx context.Context) (int, error) {
	const op = "storage.repository.CountActiveSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM accounts WHERE subscription_status = 'active'`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Storage) scanAccount(row rowScanner, op string) (*models.Account, error) {
	acc, err := scanAccountRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return acc, nil
}

func scanAccountRow(row rowScanner) (*models.Account, error) {
	acc := &models.Account{}
	var name sql.NullString
	var plan, status sql.NullString
	var start, end sql.NullTime

	if err := row.Scan(&acc.ID, &acc.Email, &name, &acc.PasswordHash,
		&acc.Role, &acc.IsActive, &acc.CreatedAt, &acc.LastLogin,
		&plan, &status, &start, &end); err != nil {
		return nil, err
	}

	if name.Valid {
		acc.Name = name.String
	}
	if plan.Valid && status.Valid {
		acc.Subscription = &models.Subscription{
			Plan:      plan.String,
			Status:    status.String,
			StartDate: start.Time,
			EndDate:   end.Time,
		}
	}
	return acc, nil
}
