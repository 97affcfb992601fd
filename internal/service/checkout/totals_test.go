package checkout

import (
	"testing"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

func inclusivePricing() domain.PricingConfig {
	return domain.PricingConfig{VatRate: 0.19, PricesIncludeVat: true, HomeCountry: "DE", Currency: "EUR"}
}

func TestComputeCartTotals_EndToEnd(t *testing.T) {
	// Корзина: 3 x 2999 = 8997; купон 10% от 5000; НДС 19% включён в цену.
	lines := []domain.CartLine{
		{Variant: domain.Variant{ID: "v1", PriceGrossCents: 2999}, Quantity: 3},
	}
	coupon := &domain.Coupon{Code: "TEN", PercentOff: 10, MinSubtotalCents: 5000, Active: true}

	totals := ComputeCartTotals(lines, coupon, inclusivePricing())

	if totals.SubtotalCents != 8997 {
		t.Fatalf("subtotal = %d, want 8997", totals.SubtotalCents)
	}
	if totals.DiscountCents != 899 {
		t.Fatalf("discount = %d, want 899", totals.DiscountCents)
	}
	if totals.GrossCents != 8098 {
		t.Fatalf("gross = %d, want 8098", totals.GrossCents)
	}
	if totals.NetCents != 6805 || totals.VatCents != 1293 {
		t.Fatalf("net/vat = %d/%d, want 6805/1293", totals.NetCents, totals.VatCents)
	}
	if totals.NetCents+totals.VatCents != totals.GrossCents {
		t.Fatal("vat split does not reconcile")
	}
	if totals.VatRatePercent != 19 {
		t.Fatalf("vat rate percent = %v, want 19", totals.VatRatePercent)
	}
}

func TestComputeCartTotals_DiscountNeverExceedsSubtotal(t *testing.T) {
	lines := []domain.CartLine{
		{Variant: domain.Variant{PriceGrossCents: 300}, Quantity: 1},
	}
	coupon := &domain.Coupon{Code: "FIVE", AmountOffCents: 500, Active: true}

	totals := ComputeCartTotals(lines, coupon, inclusivePricing())

	if totals.DiscountCents != 300 {
		t.Fatalf("discount = %d, want 300 (clamped)", totals.DiscountCents)
	}
	if totals.GrossCents != 0 || totals.NetCents != 0 || totals.VatCents != 0 {
		t.Fatalf("zeroed totals expected, got %+v", totals)
	}
}

func TestComputeCartTotals_NoCoupon(t *testing.T) {
	lines := []domain.CartLine{
		{Variant: domain.Variant{PriceGrossCents: 11900}, Quantity: 1},
	}

	totals := ComputeCartTotals(lines, nil, inclusivePricing())

	if totals.DiscountCents != 0 {
		t.Fatalf("discount = %d, want 0", totals.DiscountCents)
	}
	if totals.NetCents != 10000 || totals.VatCents != 1900 {
		t.Fatalf("net/vat = %d/%d, want 10000/1900", totals.NetCents, totals.VatCents)
	}
	if totals.AppliedCoupon != nil {
		t.Fatal("no coupon must be reported")
	}
}

func TestComputeCartTotals_ExclusivePricing(t *testing.T) {
	lines := []domain.CartLine{
		{Variant: domain.Variant{PriceGrossCents: 10000}, Quantity: 1},
	}
	cfg := domain.PricingConfig{VatRate: 0.19, PricesIncludeVat: false}

	totals := ComputeCartTotals(lines, nil, cfg)

	if totals.NetCents != 10000 || totals.VatCents != 1900 || totals.GrossCents != 11900 {
		t.Fatalf("exclusive split wrong: %+v", totals)
	}
}

func TestComputeCartTotals_EmptyCart(t *testing.T) {
	totals := ComputeCartTotals(nil, nil, inclusivePricing())
	if totals.SubtotalCents != 0 || totals.GrossCents != 0 {
		t.Fatalf("empty cart totals must be zero: %+v", totals)
	}
}
