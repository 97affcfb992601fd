package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// VatBreakdown — разложение суммы на нетто/НДС/брутто в центах.
// Инвариант: Net + Vat == Gross, все суммы целые.
type VatBreakdown struct {
	Net     int64
	Vat     int64
	Gross   int64
	VatRate float64
}

// SplitVatFromGross выделяет НДС из суммы, которая уже включает налог.
// Округляется только нетто; НДС вычисляется как остаток, чтобы разложение
// всегда сходилось цент в цент.
func SplitVatFromGross(grossCents int64, vatRate float64) VatBreakdown {
	net := int64(math.Round(float64(grossCents) / (1 + vatRate)))
	return VatBreakdown{
		Net:     net,
		Vat:     grossCents - net,
		Gross:   grossCents,
		VatRate: vatRate,
	}
}

// SplitVatFromNet начисляет НДС поверх нетто-суммы (режим "цены без НДС").
// Округляется только НДС; брутто складывается из частей.
func SplitVatFromNet(netCents int64, vatRate float64) VatBreakdown {
	vat := int64(math.Round(float64(netCents) * vatRate))
	return VatBreakdown{
		Net:     netCents,
		Vat:     vat,
		Gross:   netCents + vat,
		VatRate: vatRate,
	}
}

// Cents конвертирует сумму в валюте в целые центы для хранения.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Euro форматирует центы в немецком денежном формате: 1.234,56 €.
func Euro(cents int64) string {
	s := fmt.Sprintf("%.2f", float64(cents)/100)
	// Десятичный разделитель по-немецки: запятая вместо точки.
	s = strings.ReplaceAll(s, ".", ",")
	whole, frac, _ := strings.Cut(s, ",")
	var b strings.Builder
	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String() + "," + frac + " €"
}

// Plain форматирует центы без символа валюты: 150 или 149.99.
// Нечисловой вход деградирует в пустую строку, а не в ошибку.
func Plain(v any) string {
	var cents int64
	switch x := v.(type) {
	case int:
		cents = int64(x)
	case int32:
		cents = int64(x)
	case int64:
		cents = x
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return ""
		}
		cents = parsed
	default:
		return ""
	}

	s := fmt.Sprintf("%.2f", float64(cents)/100)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
