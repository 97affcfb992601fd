package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/postgres"
)

const (
	defaultTimeout = 30 * time.Second
)

func main() {
	var (
		direction string
		steps     int
		dsn       string
	)

	flag.StringVar(&direction, "direction", "up", "migration direction: up|down|status|seed")
	flag.IntVar(&steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: SHOP_DATABASE_URL)")
	flag.Parse()

	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv("SHOP_DATABASE_URL"))
	}
	if dsn == "" {
		fail("SHOP_DATABASE_URL (or -dsn) is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "up":
		if err := store.MigrateUp(ctx, steps); err != nil {
			fail("migrate up failed: %v", err)
		}
		version, count, err := store.MigrationStatus(ctx)
		if err != nil {
			fail("migration status failed: %v", err)
		}
		fmt.Printf("migrate up ok: version=%d applied=%d\n", version, count)
	case "down":
		if steps <= 0 {
			steps = 1
		}
		if err := store.MigrateDown(ctx, steps); err != nil {
			fail("migrate down failed: %v", err)
		}
		version, count, err := store.MigrationStatus(ctx)
		if err != nil {
			fail("migration status failed: %v", err)
		}
		fmt.Printf("migrate down ok: version=%d applied=%d\n", version, count)
	case "status":
		version, count, err := store.MigrationStatus(ctx)
		if err != nil {
			fail("migration status failed: %v", err)
		}
		fmt.Printf("migration status: version=%d applied=%d\n", version, count)
	case "seed":
		if err := store.MigrateUp(ctx, 0); err != nil {
			fail("migrate up failed: %v", err)
		}
		if err := seedDemoCatalog(store); err != nil {
			fail("seed failed: %v", err)
		}
		fmt.Println("seed ok: demo catalog, coupon WELCOME10 and a fresh invite created")
	default:
		fail("unsupported direction: %s (use up|down|status|seed)", direction)
	}
}

// seedDemoCatalog наполняет пустой магазин демонстрационными данными:
// пара товаров с вариантами, промокод и действующий инвайт для входа.
func seedDemoCatalog(store *postgres.Store) error {
	products := postgres.NewProductRepository(store)
	variants := postgres.NewVariantRepository(store)
	coupons := postgres.NewCouponRepository(store)
	invites := postgres.NewInviteRepository(store)

	now := time.Now().UTC()

	sneaker := domain.Product{
		ID:          uuid.NewString(),
		Title:       "Runner One",
		Slug:        "runner-one",
		Description: "Leichter Laufschuh für jeden Tag.",
		Status:      domain.ProductStatusActive,
		PublishedAt: &now,
		CreatedAt:   now,
	}
	if err := products.Create(sneaker); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil // магазин уже наполнен
		}
		return err
	}
	for _, v := range []domain.Variant{
		{ID: uuid.NewString(), ProductID: sneaker.ID, PriceGrossCents: 8999, Stock: 12, Attrs: domain.VariantAttrs{Color: "Black", Size: "EU 42"}},
		{ID: uuid.NewString(), ProductID: sneaker.ID, PriceGrossCents: 8999, Stock: 7, Attrs: domain.VariantAttrs{Color: "Black", Size: "EU 43"}},
		{ID: uuid.NewString(), ProductID: sneaker.ID, PriceGrossCents: 9499, Stock: 3, Attrs: domain.VariantAttrs{Color: "White", Size: "EU 43"}},
	} {
		if err := variants.Create(v); err != nil {
			return err
		}
	}

	tee := domain.Product{
		ID:          uuid.NewString(),
		Title:       "Logo Tee",
		Slug:        "logo-tee",
		Description: "Baumwoll-Shirt mit Stick.",
		Status:      domain.ProductStatusActive,
		PublishedAt: &now,
		CreatedAt:   now,
	}
	if err := products.Create(tee); err != nil {
		return err
	}
	for _, size := range []string{"S", "M", "L"} {
		v := domain.Variant{
			ID:              uuid.NewString(),
			ProductID:       tee.ID,
			PriceGrossCents: 2999,
			Stock:           20,
			Attrs:           domain.VariantAttrs{Color: "Navy", Size: size},
		}
		if err := variants.Create(v); err != nil {
			return err
		}
	}

	coupon := domain.Coupon{
		ID:               uuid.NewString(),
		Code:             "WELCOME10",
		PercentOff:       10,
		MinSubtotalCents: 2000,
		Active:           true,
	}
	if err := coupons.Create(coupon); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		return err
	}

	invite := domain.Invite{
		ID:        uuid.NewString(),
		Token:     strings.ReplaceAll(uuid.NewString(), "-", ""),
		CreatedAt: now,
		ExpiresAt: now.Add(domain.DefaultInviteTTL),
		MaxUses:   5,
	}
	if err := invites.Create(invite); err != nil {
		return err
	}
	fmt.Printf("invite token: %s\n", invite.Token)
	return nil
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
