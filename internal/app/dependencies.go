package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
	"github.com/vladislavdragonenkov/shop/internal/service/cart"
	"github.com/vladislavdragonenkov/shop/internal/service/catalog"
	"github.com/vladislavdragonenkov/shop/internal/service/checkout"
	"github.com/vladislavdragonenkov/shop/internal/service/httpapi"
	"github.com/vladislavdragonenkov/shop/internal/service/invite"
	"github.com/vladislavdragonenkov/shop/internal/service/payment"
	"github.com/vladislavdragonenkov/shop/internal/session"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
	"github.com/vladislavdragonenkov/shop/internal/storage/postgres"
)

// dependencies собирает хранилища и инфраструктуру, которые нужно
// закрыть при остановке приложения.
type dependencies struct {
	products domain.ProductRepository
	variants domain.VariantRepository
	carts    cart.Store
	coupons  domain.CouponRepository
	orders   domain.OrderRepository
	invites  domain.InviteRepository
	hearts   domain.HeartRepository

	store         *postgres.Store
	kafkaProducer *kafka.Producer
}

// buildDependencies выбирает хранилище: Postgres при заданном DatabaseURL,
// иначе всё живёт в памяти, а корзина анонимных посетителей в сессии.
func buildDependencies(ctx context.Context, cfg Config, m *metrics.ShopMetrics, logger *log.Entry) (*dependencies, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("база данных не настроена, используем in-memory хранилище")
		products := memory.NewProductRepository()
		variants := memory.NewVariantRepository()
		return &dependencies{
			products: products,
			variants: variants,
			carts:    cart.NewSessionStore(variants, products, m, nil),
			coupons:  memory.NewCouponRepository(),
			orders:   memory.NewOrderRepository(),
			invites:  memory.NewInviteRepository(),
			hearts:   memory.NewHeartRepository(),
		}, nil
	}

	store, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	logger.Info("подключены PostgreSQL репозитории")

	products := postgres.NewProductRepository(store)
	variants := postgres.NewVariantRepository(store)
	cartRepo := postgres.NewCartRepository(store)
	return &dependencies{
		products: products,
		variants: variants,
		carts:    cart.NewDatabaseStore(cartRepo, variants, products, m, nil),
		coupons:  postgres.NewCouponRepository(store),
		orders:   postgres.NewOrderRepository(store),
		invites:  postgres.NewInviteRepository(store),
		hearts:   postgres.NewHeartRepository(store),
		store:    store,
	}, nil
}

// buildServer связывает сервисы и возвращает HTTP-сервер магазина.
func buildServer(
	deps *dependencies,
	pricing domain.PricingConfig,
	publisher checkout.EventPublisher,
	m *metrics.ShopMetrics,
	cfg Config,
	logger *log.Entry,
) *httpapi.Server {
	catalogSvc := catalog.NewService(deps.products, deps.variants, deps.hearts, nil)
	checkoutSvc := checkout.NewService(deps.carts, deps.coupons, deps.orders, pricing, publisher, m, nil)
	inviteSvc := invite.NewService(deps.invites, cfg.InviteTTL, nil)
	payments := payment.NewStubRegistry()
	sessions := session.NewStore()

	return httpapi.NewServer(catalogSvc, deps.carts, checkoutSvc, inviteSvc, payments, sessions, pricing, m, nil)
}

func (d *dependencies) close(logger *log.Entry) {
	if d.kafkaProducer != nil {
		if err := d.kafkaProducer.Close(); err != nil {
			logger.WithError(err).Warn("failed to close kafka producer")
		}
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
