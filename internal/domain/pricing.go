package domain

// PricingConfig — явная конфигурация ценообразования, передаваемая в расчёт
// итогов корзины. Заменяет неявные глобальные настройки.
type PricingConfig struct {
	// VatRate — ставка НДС, например 0.19 для 19%.
	VatRate float64
	// PricesIncludeVat определяет режим: цены уже содержат НДС (true)
	// или НДС начисляется поверх (false).
	PricesIncludeVat bool
	// HomeCountry — ISO-код страны магазина (для заказов и отчётности).
	HomeCountry string
	// Currency — трёхбуквенный код валюты магазина.
	Currency string
}

// DefaultPricingConfig возвращает настройки немецкого магазина:
// стандартная ставка 19%, цены с НДС, евро.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		VatRate:          0.19,
		PricesIncludeVat: true,
		HomeCountry:      "DE",
		Currency:         "EUR",
	}
}

// Split раскладывает сумму на нетто/НДС/брутто в настроенном режиме.
func (c PricingConfig) Split(amountCents int64) VatBreakdown {
	if c.PricesIncludeVat {
		return SplitVatFromGross(amountCents, c.VatRate)
	}
	return SplitVatFromNet(amountCents, c.VatRate)
}

// Validate проверяет, что ставка НДС не отрицательная.
func (c PricingConfig) Validate() error {
	if c.VatRate < 0 {
		return ErrVatRateInvalid
	}
	return nil
}
