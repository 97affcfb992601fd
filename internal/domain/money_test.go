package domain

import "testing"

func TestSplitVatFromGross(t *testing.T) {
	tests := []struct {
		name    string
		gross   int64
		rate    float64
		wantNet int64
		wantVat int64
	}{
		{name: "standard german rate", gross: 11900, rate: 0.19, wantNet: 10000, wantVat: 1900},
		{name: "discounted cart total", gross: 8098, rate: 0.19, wantNet: 6805, wantVat: 1293},
		{name: "zero amount", gross: 0, rate: 0.19, wantNet: 0, wantVat: 0},
		{name: "zero rate", gross: 5000, rate: 0, wantNet: 5000, wantVat: 0},
		{name: "one cent", gross: 1, rate: 0.19, wantNet: 1, wantVat: 0},
		{name: "reduced rate", gross: 1070, rate: 0.07, wantNet: 1000, wantVat: 70},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitVatFromGross(tc.gross, tc.rate)
			if got.Net != tc.wantNet || got.Vat != tc.wantVat {
				t.Fatalf("split(%d, %v) = net %d vat %d, want net %d vat %d",
					tc.gross, tc.rate, got.Net, got.Vat, tc.wantNet, tc.wantVat)
			}
			if got.Gross != tc.gross {
				t.Fatalf("gross changed: got %d, want %d", got.Gross, tc.gross)
			}
		})
	}
}

// Разложение должно сходиться цент в цент на любых входах.
func TestSplitVatFromGross_Reconciles(t *testing.T) {
	rates := []float64{0, 0.07, 0.19, 0.20, 0.255}
	for _, rate := range rates {
		for gross := int64(0); gross < 10000; gross += 7 {
			b := SplitVatFromGross(gross, rate)
			if b.Net+b.Vat != b.Gross {
				t.Fatalf("net %d + vat %d != gross %d (rate %v)", b.Net, b.Vat, b.Gross, rate)
			}
		}
	}
}

func TestSplitVatFromNet(t *testing.T) {
	tests := []struct {
		name      string
		net       int64
		rate      float64
		wantVat   int64
		wantGross int64
	}{
		{name: "standard rate", net: 10000, rate: 0.19, wantVat: 1900, wantGross: 11900},
		{name: "rounding up", net: 999, rate: 0.19, wantVat: 190, wantGross: 1189},
		{name: "zero rate", net: 999, rate: 0, wantVat: 0, wantGross: 999},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitVatFromNet(tc.net, tc.rate)
			if got.Vat != tc.wantVat || got.Gross != tc.wantGross {
				t.Fatalf("split(%d, %v) = vat %d gross %d, want vat %d gross %d",
					tc.net, tc.rate, got.Vat, got.Gross, tc.wantVat, tc.wantGross)
			}
			if got.Net+got.Vat != got.Gross {
				t.Fatalf("breakdown does not reconcile: %+v", got)
			}
		})
	}
}

func TestCents(t *testing.T) {
	if got := Cents(29.99); got != 2999 {
		t.Fatalf("Cents(29.99) = %d, want 2999", got)
	}
	if got := Cents(0); got != 0 {
		t.Fatalf("Cents(0) = %d, want 0", got)
	}
}

func TestEuro(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 2999, want: "29,99 €"},
		{cents: 123456, want: "1.234,56 €"},
		{cents: 100000000, want: "1.000.000,00 €"},
		{cents: 0, want: "0,00 €"},
		{cents: -123456, want: "-1.234,56 €"},
	}
	for _, tc := range tests {
		if got := Euro(tc.cents); got != tc.want {
			t.Errorf("Euro(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestPlain(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "whole euros", in: int64(15000), want: "150"},
		{name: "with cents", in: int64(14999), want: "149.99"},
		{name: "int input", in: 2999, want: "29.99"},
		{name: "numeric string", in: " 500 ", want: "5"},
		{name: "garbage string", in: "abc", want: ""},
		{name: "nil", in: nil, want: ""},
		{name: "float unsupported", in: 1.5, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Plain(tc.in); got != tc.want {
				t.Fatalf("Plain(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPricingConfigSplit(t *testing.T) {
	inclusive := PricingConfig{VatRate: 0.19, PricesIncludeVat: true}
	if b := inclusive.Split(11900); b.Net != 10000 {
		t.Fatalf("inclusive split: net = %d, want 10000", b.Net)
	}

	exclusive := PricingConfig{VatRate: 0.19, PricesIncludeVat: false}
	if b := exclusive.Split(10000); b.Gross != 11900 {
		t.Fatalf("exclusive split: gross = %d, want 11900", b.Gross)
	}
}

func TestPricingConfigValidate(t *testing.T) {
	if err := (PricingConfig{VatRate: 0.19}).Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if err := (PricingConfig{VatRate: -0.1}).Validate(); err == nil {
		t.Fatal("negative vat rate accepted")
	}
}
