// Package models: структуры каталога тарифов и купонов для оформления подписки.
package models

// Циклы оплаты тарифа.
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
)

// Типы купонов.
const (
	CouponPercentage = "percentage"
	CouponFixed      = "fixed"
)

// Package описывает тарифный план из каталога.
type Package struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	MonthlyPrice         float64  `json:"monthly_price"`
	YearlyPrice          float64  `json:"yearly_price"`
	OriginalMonthlyPrice float64  `json:"original_monthly_price,omitempty"`
	OriginalYearlyPrice  float64  `json:"original_yearly_price,omitempty"`
	Description          string   `json:"description"`
	Features             []string `json:"features"`
	Popular              bool     `json:"popular,omitempty"`
}

// Coupon — именованное правило скидки, применяемое при оформлении.
// Для типа percentage Discount трактуется как процент, для fixed —
// как сумма в валюте тарифа.
type Coupon struct {
	Code        string  `json:"code"`
	Discount    float64 `json:"discount"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

// PendingSelection — выбранный, но ещё не оплаченный тариф.
// Хранится вне сессии до завершения оформления.
type PendingSelection struct {
	PackageID    string  `json:"package_id"`
	PackageName  string  `json:"package_name"`
	BillingCycle string  `json:"billing_cycle"`
	Price        float64 `json:"price"` // Эффективная цена за выбранный цикл
}
