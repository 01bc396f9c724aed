// Package billing отдаёт историю платежей: список счетов учётной
// записи для раздела Billing личного кабинета.
package billing

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

// InvoiceRepository описывает чтение счетов из хранилища.
type InvoiceRepository interface {
	ListInvoicesByAccount(ctx context.Context, accountID string) ([]*models.Invoice, error)
}

// BillingService отдаёт историю платежей.
type BillingService struct {
	invoices InvoiceRepository
}

// New создает BillingService.
func New(invoices InvoiceRepository) *BillingService {
	return &BillingService{invoices: invoices}
}

// ListInvoices возвращает счета учётной записи. Пустая история — это
// пустой список, не ошибка.
func (s *BillingService) ListInvoices(ctx context.Context, accountID string) ([]*models.Invoice, error) {
	const op = "billing.ListInvoices"

	invoices, err := s.invoices.ListInvoicesByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return invoices, nil
}
