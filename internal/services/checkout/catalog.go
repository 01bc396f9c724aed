package checkout

import (
	"errors"
	"strings"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

// ErrUnknownPackage возвращается при выборе несуществующего тарифа.
var ErrUnknownPackage = errors.New("unknown package")

// ErrInvalidCoupon возвращается при вводе несуществующего кода купона.
var ErrInvalidCoupon = errors.New("invalid coupon")

// Каталог тарифов стенда. Цены фиксированы.
var packages = []models.Package{
	{
		ID:           "basic",
		Name:         "Basic",
		MonthlyPrice: 9.99,
		YearlyPrice:  99.99,
		Description:  "Perfect for individuals getting started",
		Features: []string{
			"100 voice messages per month",
			"Basic voice quality",
			"Standard support",
			"Mobile app access",
			"1 GB storage",
		},
	},
	{
		ID:                   "pro",
		Name:                 "Pro",
		MonthlyPrice:         19.99,
		YearlyPrice:          199.99,
		OriginalMonthlyPrice: 29.99,
		OriginalYearlyPrice:  299.99,
		Description:          "Ideal for professionals and small teams",
		Popular:              true,
		Features: []string{
			"Unlimited voice messages",
			"HD voice quality",
			"Priority support",
			"Mobile & desktop apps",
			"10 GB storage",
			"Voice transcription",
			"Custom voice filters",
		},
	},
	{
		ID:           "enterprise",
		Name:         "Enterprise",
		MonthlyPrice: 49.99,
		YearlyPrice:  499.99,
		Description:  "For large teams and organizations",
		Features: []string{
			"Unlimited everything",
			"Ultra HD voice quality",
			"24/7 dedicated support",
			"All platform access",
			"Unlimited storage",
			"Advanced analytics",
			"Custom integrations",
			"Team management",
			"API access",
		},
	},
}

// Каталог купонов. Код сравнивается без учёта регистра.
var coupons = []models.Coupon{
	{
		Code:        "SAVE20",
		Discount:    20,
		Type:        models.CouponPercentage,
		Description: "20% off your first month",
	},
	{
		Code:        "WELCOME10",
		Discount:    10,
		Type:        models.CouponFixed,
		Description: "$10 off any plan",
	},
	{
		Code:        "STUDENT50",
		Discount:    50,
		Type:        models.CouponPercentage,
		Description: "50% student discount",
	},
}

// Packages возвращает каталог тарифов.
func Packages() []models.Package {
	result := make([]models.Package, len(packages))
	copy(result, packages)
	return result
}

// PackageByID возвращает тариф по идентификатору.
func PackageByID(id string) (*models.Package, error) {
	for i := range packages {
		if packages[i].ID == id {
			pkg := packages[i]
			return &pkg, nil
		}
	}
	return nil, ErrUnknownPackage
}

// ApplyCoupon ищет купон по коду без учёта регистра. Состояние нигде
// не меняется: купон лишь вычисляет скидку к отображаемой сумме.
func ApplyCoupon(code string) (*models.Coupon, error) {
	for i := range coupons {
		if strings.EqualFold(coupons[i].Code, code) {
			coupon := coupons[i]
			return &coupon, nil
		}
	}
	return nil, ErrInvalidCoupon
}

// ComputeTotal вычисляет итог с учётом купона. Процентный купон
// умножает базу на (1 - скидка/100); фиксированный вычитается, итог
// не опускается ниже нуля. Применяется не более одного купона.
func ComputeTotal(basePrice float64, coupon *models.Coupon) float64 {
	if coupon == nil {
		return basePrice
	}
	switch coupon.Type {
	case models.CouponPercentage:
		return basePrice * (1 - coupon.Discount/100)
	case models.CouponFixed:
		total := basePrice - coupon.Discount
		if total < 0 {
			return 0
		}
		return total
	default:
		return basePrice
	}
}
