package models

import "time"

// Статусы счёта.
const (
	InvoicePaid    = "paid"
	InvoicePending = "pending"
	InvoiceFailed  = "failed"
)

// Invoice представляет счёт за подписку в истории платежей пользователя.
type Invoice struct {
	ID            string     `json:"id"`
	AccountID     string     `json:"account_id"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"` // paid, pending или failed
	Plan          string     `json:"plan"`
	BillingPeriod string     `json:"billing_period"` // monthly или yearly
	CreatedAt     time.Time  `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}
