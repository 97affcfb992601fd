package domain

import "time"

// Coupon — промокод. Задаётся либо процентная скидка, либо фиксированная сумма
// в центах; валидация отвергает оба поля сразу, но расчёт обязан пережить и
// такое состояние (фиксированная сумма имеет приоритет).
type Coupon struct {
	ID               string
	Code             string
	PercentOff       int64 // 0 = не задано
	AmountOffCents   int64 // 0 = не задано
	MinSubtotalCents int64
	ValidFrom        *time.Time
	ValidTo          *time.Time
	Active           bool
}

// ValidateInvariants проверяет, что купон описан корректно.
func (c *Coupon) ValidateInvariants() []error {
	var errs []error
	if c.Code == "" {
		errs = append(errs, ErrCouponCodeRequired)
	}
	if c.PercentOff > 0 && c.AmountOffCents > 0 {
		errs = append(errs, ErrCouponDiscountAmbiguous)
	}
	return errs
}

// ValidAt сообщает, действует ли купон в момент now: активен и попадает
// в окно [ValidFrom, ValidTo], любая граница может быть открытой.
func (c *Coupon) ValidAt(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidTo != nil && now.After(*c.ValidTo) {
		return false
	}
	return true
}

// Expired сообщает, что окно действия купона уже закрылось.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ValidTo != nil && now.After(*c.ValidTo)
}

// DiscountAmount вычисляет размер скидки в центах для данного промежуточного
// итога. Ниже минимального порога скидки нет; фиксированная сумма обрезается
// по subtotal и имеет приоритет над процентом; процент округляется вниз.
func (c *Coupon) DiscountAmount(subtotalCents int64) int64 {
	if subtotalCents < c.MinSubtotalCents {
		return 0
	}
	if c.AmountOffCents > 0 {
		return min(c.AmountOffCents, subtotalCents)
	}
	if c.PercentOff > 0 {
		return subtotalCents * c.PercentOff / 100
	}
	return 0
}
