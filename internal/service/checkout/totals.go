package checkout

import "github.com/vladislavdragonenkov/shop/internal/domain"

// CartTotals — итоговая сводка корзины для страницы и для снимка заказа.
// Все суммы в центах; Net + Vat == Gross всегда.
type CartTotals struct {
	Lines          []domain.CartLine
	SubtotalCents  int64
	DiscountCents  int64
	NetCents       int64
	VatCents       int64
	GrossCents     int64
	VatRatePercent float64
	AppliedCoupon  *domain.Coupon
}

// ComputeCartTotals собирает итоги корзины: промежуточная сумма, скидка
// купона, затем разложение НДС в настроенном режиме. Итог не бывает
// отрицательным — скидка обрезается по промежуточной сумме.
func ComputeCartTotals(lines []domain.CartLine, coupon *domain.Coupon, cfg domain.PricingConfig) CartTotals {
	subtotal := domain.SubtotalCents(lines)

	var discount int64
	if coupon != nil {
		discount = coupon.DiscountAmount(subtotal)
	}

	afterDiscount := subtotal - discount
	if afterDiscount < 0 {
		afterDiscount = 0
	}

	breakdown := cfg.Split(afterDiscount)

	return CartTotals{
		Lines:          lines,
		SubtotalCents:  subtotal,
		DiscountCents:  discount,
		NetCents:       breakdown.Net,
		VatCents:       breakdown.Vat,
		GrossCents:     breakdown.Gross,
		VatRatePercent: cfg.VatRate * 100,
		AppliedCoupon:  coupon,
	}
}
