// Package checkout реализует оформление подписки: выбор тарифа,
// применение купона, имитацию списания и активацию подписки с записью
// счёта. До завершения оформления выбор хранится отдельно от сессии и
// не даёт никакого доступа.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/paymentprovider"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/notifier"
)

// pendingKeyPrefix — ключ отложенного выбора тарифа; идентификатор
// учётной записи дописывается в конец.
const pendingKeyPrefix = "checkout:pending:"

// pendingTTL — время жизни отложенного выбора.
const pendingTTL = 24 * time.Hour

// subscriptionTerm — срок подписки от момента оплаты. Не зависит от
// цикла оплаты.
const subscriptionTerm = 30 * 24 * time.Hour

// ErrNoPendingSelection возвращается при завершении оформления без
// предварительно выбранного тарифа.
var ErrNoPendingSelection = errors.New("no pending selection")

// AccountRepository описывает операции хранилища учётных записей,
// нужные оформлению подписки.
type AccountRepository interface {
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	UpdateSubscription(ctx context.Context, accountID string, sub models.Subscription) error
}

// InvoiceRepository описывает запись счетов.
type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, invoice models.Invoice) (string, error)
}

// SessionStore обновляет снимок сессии после активации подписки.
type SessionStore interface {
	Set(ctx context.Context, account *models.Account) error
}

// SelectionCache хранит отложенный выбор тарифа между выбором и оплатой.
type SelectionCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// PaymentProvider выполняет списание.
type PaymentProvider interface {
	Charge(ctx context.Context, req paymentprovider.ChargeRequest) (*paymentprovider.ChargeResponse, error)
}

// Notifier сообщает пользователю об исходе оформления.
type Notifier interface {
	Notify(msg notifier.Message)
}

// CheckoutService реализует оформление подписки.
type CheckoutService struct {
	log        *slog.Logger
	accounts   AccountRepository
	invoices   InvoiceRepository
	sessions   SessionStore
	selections SelectionCache
	payments   PaymentProvider
	notifier   Notifier
}

// New создает CheckoutService.
func New(log *slog.Logger, accounts AccountRepository, invoices InvoiceRepository,
	sessions SessionStore, selections SelectionCache,
	payments PaymentProvider, notify Notifier) *CheckoutService {
	return &CheckoutService{
		log:        log,
		accounts:   accounts,
		invoices:   invoices,
		sessions:   sessions,
		payments:   payments,
		selections: selections,
		notifier:   notify,
	}
}

// SelectPackage запоминает выбранный тариф и цикл оплаты для учётной
// записи. Повторный выбор замещает предыдущий. Подписка при этом не
// меняется: до оплаты выбор не даёт доступа.
func (s *CheckoutService) SelectPackage(ctx context.Context, accountID, packageID, billingCycle string) (*models.PendingSelection, error) {
	const op = "checkout.SelectPackage"

	pkg, err := PackageByID(packageID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	price := pkg.MonthlyPrice
	if billingCycle == models.BillingYearly {
		price = pkg.YearlyPrice
	}
	selection := models.PendingSelection{
		PackageID:    pkg.ID,
		PackageName:  pkg.Name,
		BillingCycle: billingCycle,
		Price:        price,
	}
	if err := s.selections.Set(ctx, pendingKeyPrefix+accountID, selection, pendingTTL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &selection, nil
}

// PendingSelection возвращает отложенный выбор тарифа учётной записи.
func (s *CheckoutService) PendingSelection(ctx context.Context, accountID string) (*models.PendingSelection, error) {
	const op = "checkout.PendingSelection"

	var selection models.PendingSelection
	found, err := s.selections.Get(ctx, pendingKeyPrefix+accountID, &selection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", op, ErrNoPendingSelection)
	}
	return &selection, nil
}

// CompleteCheckout завершает оформление: применяет купон, списывает
// итоговую сумму, активирует подписку на срок subscriptionTerm,
// обновляет снимок сессии, записывает оплаченный счёт и удаляет
// отложенный выбор. Код купона пустой строкой означает оформление без
// купона.
func (s *CheckoutService) CompleteCheckout(ctx context.Context, accountID, couponCode string) (*models.Account, error) {
	const op = "checkout.CompleteCheckout"

	selection, err := s.PendingSelection(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var coupon *models.Coupon
	if couponCode != "" {
		coupon, err = ApplyCoupon(couponCode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	total := ComputeTotal(selection.Price, coupon)

	charge, err := s.payments.Charge(ctx, paymentprovider.ChargeRequest{
		AccountID:   accountID,
		Amount:      total,
		Description: fmt.Sprintf("%s plan, %s billing", selection.PackageName, selection.BillingCycle),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("payment succeeded",
		slog.String("account_id", accountID),
		slog.String("payment_id", charge.PaymentID),
		slog.Float64("amount", total))

	now := time.Now()
	sub := models.Subscription{
		Plan:      selection.PackageName,
		Status:    models.SubscriptionActive,
		StartDate: now,
		EndDate:   now.Add(subscriptionTerm),
	}
	if err := s.accounts.UpdateSubscription(ctx, accountID, sub); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	account, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.sessions.Set(ctx, account); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	paidAt := now
	_, err = s.invoices.CreateInvoice(ctx, models.Invoice{
		AccountID:     accountID,
		Amount:        total,
		Status:        models.InvoicePaid,
		Plan:          selection.PackageName,
		BillingPeriod: selection.BillingCycle,
		CreatedAt:     now,
		PaidAt:        &paidAt,
	})
	if err != nil {
		// Подписка уже активна, счёт лишь история платежей.
		s.log.Error("failed to record invoice", slog.String("account_id", accountID))
	}

	if err := s.selections.Invalidate(ctx, pendingKeyPrefix+accountID); err != nil {
		s.log.Error("failed to clear pending selection", slog.String("account_id", accountID))
	}

	s.notifier.Notify(notifier.Message{
		AccountID: accountID,
		Text:      fmt.Sprintf("Subscription to %s activated", selection.PackageName),
		Severity:  notifier.SeveritySuccess,
	})
	return account, nil
}
