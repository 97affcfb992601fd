package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

func makeOrder(id, userID string, createdAt time.Time) domain.Order {
	return domain.Order{
		ID:              id,
		UserID:          userID,
		Status:          domain.OrderStatusNew,
		GrossTotalCents: 8098,
		Items: []domain.OrderItem{
			{ID: id + "-item", OrderID: id, ProductTitle: "Sneaker", Quantity: 1, PriceGrossCents: 8098},
		},
		CreatedAt: createdAt,
	}
}

func TestOrderCreateAndGet(t *testing.T) {
	repo := NewOrderRepository()
	order := makeOrder("o1", "user-1", time.Now().UTC())

	if err := repo.Create(order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(order); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("duplicate error = %v, want ErrDuplicate", err)
	}

	got, err := repo.Get("o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 1 || got.GrossTotalCents != 8098 {
		t.Fatalf("stored order mangled: %+v", got)
	}

	// Мутация выданной копии не должна портить хранилище.
	got.Items[0].Quantity = 99
	again, _ := repo.Get("o1")
	if again.Items[0].Quantity != 1 {
		t.Fatal("repository leaked internal state")
	}

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("missing order error = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderListByUser(t *testing.T) {
	repo := NewOrderRepository()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_ = repo.Create(makeOrder("o1", "user-1", base))
	_ = repo.Create(makeOrder("o2", "user-1", base.Add(time.Hour)))
	_ = repo.Create(makeOrder("o3", "user-2", base))

	orders, err := repo.ListByUser("user-1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != "o2" {
		t.Fatalf("list order wrong: %+v", orders)
	}

	limited, _ := repo.ListByUser("user-1", 1)
	if len(limited) != 1 {
		t.Fatalf("limit ignored: %+v", limited)
	}
}

func TestSavePayment(t *testing.T) {
	repo := NewOrderRepository()
	_ = repo.Create(makeOrder("o1", "user-1", time.Now().UTC()))

	payment := domain.Payment{
		ID:          "pay-1",
		OrderID:     "o1",
		Provider:    domain.PaymentProviderStripe,
		Status:      "created",
		AmountCents: 8098,
		Currency:    "EUR",
	}
	if err := repo.SavePayment(payment); err != nil {
		t.Fatalf("save payment: %v", err)
	}

	if err := repo.SavePayment(domain.Payment{OrderID: "missing"}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("payment for missing order = %v, want ErrOrderNotFound", err)
	}
}

func TestInviteRedeem(t *testing.T) {
	repo := NewInviteRepository()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	invite := domain.Invite{
		ID:        "inv-1",
		Token:     "tok-abc",
		CreatedAt: now,
		ExpiresAt: now.Add(30 * time.Minute),
		MaxUses:   2,
	}
	if err := repo.Create(invite); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := repo.Redeem("tok-abc", "user-1", now)
	if err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if first.Uses != 1 || first.UsedBy != "user-1" || first.UsedAt == nil {
		t.Fatalf("redeem bookkeeping wrong: %+v", first)
	}

	second, err := repo.Redeem("tok-abc", "user-2", now)
	if err != nil {
		t.Fatalf("second redeem: %v", err)
	}
	if second.Uses != 2 || second.UsedBy != "user-1" {
		t.Fatalf("first user must stay recorded: %+v", second)
	}

	if _, err := repo.Redeem("tok-abc", "user-3", now); !errors.Is(err, domain.ErrInviteExhausted) {
		t.Fatalf("exhausted error = %v, want ErrInviteExhausted", err)
	}
	if _, err := repo.Redeem("tok-abc", "user-4", now.Add(time.Hour)); !errors.Is(err, domain.ErrInviteExhausted) {
		t.Fatalf("expired error = %v, want ErrInviteExhausted", err)
	}
	if _, err := repo.Redeem("ghost", "user-1", now); !errors.Is(err, domain.ErrInviteNotFound) {
		t.Fatalf("unknown token error = %v, want ErrInviteNotFound", err)
	}
}
