package checkout

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
	"github.com/vladislavdragonenkov/shop/internal/service/cart"
	"github.com/vladislavdragonenkov/shop/internal/session"
)

// EventPublisher публикует события заказов наружу. Может отсутствовать.
type EventPublisher interface {
	PublishEvent(topic string, key string, event any) error
}

// Service считает итоги корзины и оформляет заказы.
type Service struct {
	carts     cart.Store
	coupons   domain.CouponRepository
	orders    domain.OrderRepository
	pricing   domain.PricingConfig
	publisher EventPublisher
	metrics   *metrics.ShopMetrics
	logger    *log.Entry
}

// NewService конструирует сервис оформления с зависимостями.
func NewService(
	carts cart.Store,
	coupons domain.CouponRepository,
	orders domain.OrderRepository,
	pricing domain.PricingConfig,
	publisher EventPublisher,
	m *metrics.ShopMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "checkout")
	}
	return &Service{
		carts:     carts,
		coupons:   coupons,
		orders:    orders,
		pricing:   pricing,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// CartView собирает текущую корзину с применённым купоном и итогами.
// Недействительный сохранённый код вычищается из сессии молча.
func (s *Service) CartView(id cart.Identity) (CartTotals, error) {
	h, err := s.carts.GetOrCreate(id)
	if err != nil {
		return CartTotals{}, err
	}
	lines, err := s.carts.ListItems(h)
	if err != nil {
		return CartTotals{}, err
	}

	coupon, err := s.sessionCoupon(id.Session)
	if err != nil {
		return CartTotals{}, err
	}

	return ComputeCartTotals(lines, coupon, s.pricing), nil
}

// sessionCoupon разрешает сохранённый в сессии код в купон.
// Любой неудачный исход чистит код (self-healing) и считается как отказ.
func (s *Service) sessionCoupon(sess *session.Session) (*domain.Coupon, error) {
	if sess == nil {
		return nil, nil
	}
	code := sess.GetString(session.KeyCouponCode)
	if code == "" {
		return nil, nil
	}

	lookup, err := s.FindApplicableCoupon(code, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !lookup.Applicable() {
		sess.Delete(session.KeyCouponCode)
		if s.metrics != nil {
			s.metrics.RecordCouponRejected(string(lookup.Status))
		}
		s.logger.WithFields(log.Fields{
			"code":   code,
			"status": lookup.Status,
		}).Debug("stored coupon code dropped")
		return nil, nil
	}

	coupon := lookup.Coupon
	return &coupon, nil
}

// ApplyCouponCode сохраняет промокод в сессии и сразу сообщает его статус.
// Код сохраняется даже недействительным: окно купона могло ещё не открыться,
// а протухший код сам исчезнет при следующем просмотре корзины.
func (s *Service) ApplyCouponCode(sess *session.Session, code string) (CouponLookup, error) {
	lookup, err := s.FindApplicableCoupon(code, time.Now().UTC())
	if err != nil {
		return CouponLookup{}, err
	}

	sess.Set(session.KeyCouponCode, code)
	if s.metrics != nil {
		if lookup.Applicable() {
			s.metrics.RecordCouponApplied()
		} else {
			s.metrics.RecordCouponRejected(string(lookup.Status))
		}
	}
	return lookup, nil
}

// RemoveCouponCode убирает промокод из сессии.
func (s *Service) RemoveCouponCode(sess *session.Session) {
	sess.Delete(session.KeyCouponCode)
}

// PlaceOrder превращает корзину в заказ: фиксирует цены и НДС на момент
// покупки, сохраняет заказ, опустошает корзину и публикует событие.
func (s *Service) PlaceOrder(id cart.Identity, addr domain.Address) (domain.Order, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.RecordCheckoutStarted()
		defer func() {
			s.metrics.RecordCheckoutDuration(time.Since(start))
		}()
	}

	if id.UserID == "" {
		return domain.Order{}, domain.ErrUserRequired
	}

	h, err := s.carts.GetOrCreate(id)
	if err != nil {
		return domain.Order{}, err
	}
	lines, err := s.carts.ListItems(h)
	if err != nil {
		return domain.Order{}, err
	}
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrOrderItemsRequired
	}

	coupon, err := s.sessionCoupon(id.Session)
	if err != nil {
		return domain.Order{}, err
	}
	totals := ComputeCartTotals(lines, coupon, s.pricing)

	if addr.Country == "" {
		addr.Country = s.pricing.HomeCountry
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:              uuid.NewString(),
		UserID:          id.UserID,
		Status:          domain.OrderStatusNew,
		VatRate:         s.pricing.VatRate,
		NetTotalCents:   totals.NetCents,
		VatTotalCents:   totals.VatCents,
		GrossTotalCents: totals.GrossCents,
		DiscountCents:   totals.DiscountCents,
		ShippingMethod:  "pickup-or-shipping-later",
		Address:         addr,
		CreatedAt:       now,
	}
	if totals.AppliedCoupon != nil {
		order.CouponCode = totals.AppliedCoupon.Code
	}

	for _, line := range lines {
		// НДС позиции фиксируется по цене единицы на момент покупки.
		unit := s.pricing.Split(line.Variant.PriceGrossCents)
		order.Items = append(order.Items, domain.OrderItem{
			ID:              uuid.NewString(),
			OrderID:         order.ID,
			ProductTitle:    line.Product.Title,
			SKU:             line.Variant.ID,
			Attrs:           line.Variant.Attrs,
			Quantity:        line.Quantity,
			PriceGrossCents: unit.Gross,
			PriceNetCents:   unit.Net,
			VatAmountCents:  unit.Vat,
		})
	}

	if err := s.orders.Create(order); err != nil {
		return domain.Order{}, err
	}

	if err := s.carts.Clear(h); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to clear cart after checkout")
	}
	if id.Session != nil {
		id.Session.Delete(session.KeyCouponCode)
	}

	if s.publisher != nil {
		event := kafka.NewOrderPlacedEvent(order.ID, order.UserID, order.GrossTotalCents, s.pricing.Currency, order.CouponCode)
		if err := s.publisher.PublishEvent(kafka.TopicOrderEvents, order.ID, event); err != nil {
			// Заказ уже сохранён; событие теряем с предупреждением.
			s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order event")
		}
	}

	if s.metrics != nil {
		s.metrics.RecordCheckoutCompleted(order.GrossTotalCents)
	}
	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"gross":    order.GrossTotalCents,
	}).Info("order placed")

	return order, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(id string) (domain.Order, error) {
	return s.orders.Get(id)
}

// ListOrders возвращает историю заказов пользователя, новые первыми.
// Анонимной сессии история недоступна.
func (s *Service) ListOrders(id cart.Identity, limit int) ([]domain.Order, error) {
	if id.UserID == "" {
		return nil, domain.ErrUserRequired
	}
	return s.orders.ListByUser(id.UserID, limit)
}
