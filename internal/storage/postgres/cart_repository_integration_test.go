package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

func seedCatalogForIntegrationTest(t *testing.T, store *Store) (productID, variantID string) {
	t.Helper()

	products := NewProductRepository(store)
	variants := NewVariantRepository(store)

	productID = uuid.NewString()
	if err := products.Create(domain.Product{
		ID: productID, Title: "Sneaker", Slug: "sneaker-" + productID[:8],
		Status: domain.ProductStatusActive, CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	variantID = uuid.NewString()
	if err := variants.Create(domain.Variant{
		ID: variantID, ProductID: productID, PriceGrossCents: 2999, Stock: 5,
		Attrs: domain.VariantAttrs{Color: "Black", Size: "EU 42"},
	}); err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return productID, variantID
}

func TestCartRepositoryIntegration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	_, variantID := seedCatalogForIntegrationTest(t, store)

	repo := NewCartRepository(store)

	cart, err := repo.GetOrCreateByUser("u1")
	if err != nil {
		t.Fatalf("get or create cart: %v", err)
	}
	again, err := repo.GetOrCreateByUser("u1")
	if err != nil {
		t.Fatalf("get or create cart again: %v", err)
	}
	if cart.ID != again.ID {
		t.Fatalf("expected the same cart, got %s and %s", cart.ID, again.ID)
	}

	// Повторное добавление сливается в одну позицию.
	if _, err := repo.AddItem(cart.ID, variantID, 2); err != nil {
		t.Fatalf("add item: %v", err)
	}
	item, err := repo.AddItem(cart.ID, variantID, 3)
	if err != nil {
		t.Fatalf("add item again: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", item.Quantity)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	if err := repo.RemoveItemByVariant(cart.ID, variantID); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	items, err = repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items after remove: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}

	if _, err := repo.AddItem("missing", variantID, 1); !errors.Is(err, domain.ErrCartNotFound) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInviteRepositoryIntegration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewInviteRepository(store)

	now := time.Now().UTC()
	invite := domain.Invite{
		ID:        uuid.NewString(),
		Token:     uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(30 * time.Minute),
		MaxUses:   1,
	}
	if err := repo.Create(invite); err != nil {
		t.Fatalf("create invite: %v", err)
	}

	redeemed, err := repo.Redeem(invite.Token, "u1", now)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if redeemed.Uses != 1 || redeemed.UsedBy != "u1" {
		t.Fatalf("unexpected redeemed state: %+v", redeemed)
	}

	if _, err := repo.Redeem(invite.Token, "u2", now); !errors.Is(err, domain.ErrInviteExhausted) {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Redeem("missing", "u1", now); !errors.Is(err, domain.ErrInviteNotFound) {
		t.Fatalf("unexpected error: %v", err)
	}
}
