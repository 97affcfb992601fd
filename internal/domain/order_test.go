package domain_test

import (
	"testing"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// helper для создания базового заказа с одной позицией.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:              "order-1",
		UserID:          "user-1",
		Status:          domain.OrderStatusNew,
		VatRate:         0.19,
		NetTotalCents:   6805,
		VatTotalCents:   1293,
		GrossTotalCents: 8098,
		Items: []domain.OrderItem{
			{
				ID:              "item-1",
				OrderID:         "order-1",
				ProductTitle:    "Sneaker",
				SKU:             "variant-1",
				Quantity:        3,
				PriceGrossCents: 2999,
				PriceNetCents:   2520,
				VatAmountCents:  479,
			},
		},
		CreatedAt: now,
	}
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
	}{
		{
			name: "no user",
			mut:  func(o *domain.Order) { o.UserID = "" },
		},
		{
			name: "no items",
			mut:  func(o *domain.Order) { o.Items = nil },
		},
		{
			name: "bad status",
			mut:  func(o *domain.Order) { o.Status = "shipped" },
		},
		{
			name: "qty invalid",
			mut:  func(o *domain.Order) { o.Items[0].Quantity = 0 },
		},
		{
			name: "price invalid",
			mut:  func(o *domain.Order) { o.Items[0].PriceGrossCents = -5 },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)
			if len(order.ValidateInvariants()) == 0 {
				t.Fatalf("expected validation errors for case %s", tc.name)
			}
		})
	}
}

func TestInviteValidAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		invite domain.Invite
		want   bool
	}{
		{
			name:   "fresh invite",
			invite: domain.Invite{ExpiresAt: now.Add(10 * time.Minute), MaxUses: 1, Uses: 0},
			want:   true,
		},
		{
			name:   "expired",
			invite: domain.Invite{ExpiresAt: now.Add(-time.Minute), MaxUses: 1, Uses: 0},
			want:   false,
		},
		{
			name:   "uses exhausted",
			invite: domain.Invite{ExpiresAt: now.Add(10 * time.Minute), MaxUses: 2, Uses: 2},
			want:   false,
		},
		{
			name:   "multi-use with headroom",
			invite: domain.Invite{ExpiresAt: now.Add(10 * time.Minute), MaxUses: 5, Uses: 4},
			want:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.invite.ValidAt(now); got != tc.want {
				t.Fatalf("ValidAt = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !domain.IsNotFound(domain.ErrProductNotFound) {
		t.Fatal("ErrProductNotFound must classify as not found")
	}
	if !domain.IsNotFound(domain.ErrVariantNotFound) {
		t.Fatal("ErrVariantNotFound must classify as not found")
	}
	if domain.IsNotFound(domain.ErrCouponNotFound) {
		t.Fatal("coupon lookup misses are not 404s, they self-heal")
	}
	if domain.IsNotFound(nil) {
		t.Fatal("nil is not a not-found error")
	}
}
