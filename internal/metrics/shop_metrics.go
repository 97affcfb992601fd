package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ShopMetrics содержит метрики витрины и корзины.
type ShopMetrics struct {
	// Счётчики операций с корзиной
	cartItemsAdded   prometheus.Counter
	cartItemsRemoved prometheus.Counter

	// Счётчики применения промокодов
	couponsApplied  prometheus.Counter
	couponsRejected *prometheus.CounterVec

	// Оформление заказов
	checkoutsStarted   prometheus.Counter
	checkoutsCompleted prometheus.Counter
	checkoutDuration   prometheus.Histogram
	orderGrossCents    prometheus.Histogram

	// Просмотры товаров
	productViews prometheus.Counter
}

// NewShopMetrics создаёт новый экземпляр метрик магазина.
func NewShopMetrics() *ShopMetrics {
	return newShopMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newShopMetricsWithRegisterer(registerer prometheus.Registerer) *ShopMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ShopMetrics{
		cartItemsAdded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_cart_items_added_total",
			Help: "Total number of add-to-cart operations",
		}),
		cartItemsRemoved: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_cart_items_removed_total",
			Help: "Total number of remove-from-cart operations",
		}),
		couponsApplied: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_coupons_applied_total",
			Help: "Total number of successfully applied coupons",
		}),
		couponsRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shop_coupons_rejected_total",
			Help: "Total number of rejected coupon codes by reason",
		}, []string{"reason"}),
		checkoutsStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_checkouts_started_total",
			Help: "Total number of checkout attempts",
		}),
		checkoutsCompleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_checkouts_completed_total",
			Help: "Total number of orders placed",
		}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shop_checkout_duration_seconds",
			Help:    "Duration of checkout processing in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		orderGrossCents: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shop_order_gross_cents",
			Help:    "Gross order totals in cents",
			Buckets: []float64{500, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
		}),
		productViews: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_product_views_total",
			Help: "Total number of product detail views",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCartItemAdded увеличивает счётчик добавлений в корзину.
func (m *ShopMetrics) RecordCartItemAdded() {
	m.cartItemsAdded.Inc()
}

// RecordCartItemRemoved увеличивает счётчик удалений из корзины.
func (m *ShopMetrics) RecordCartItemRemoved() {
	m.cartItemsRemoved.Inc()
}

// RecordCouponApplied увеличивает счётчик успешно применённых промокодов.
func (m *ShopMetrics) RecordCouponApplied() {
	m.couponsApplied.Inc()
}

// RecordCouponRejected увеличивает счётчик отклонённых промокодов с причиной.
func (m *ShopMetrics) RecordCouponRejected(reason string) {
	m.couponsRejected.WithLabelValues(reason).Inc()
}

// RecordCheckoutStarted увеличивает счётчик попыток оформления.
func (m *ShopMetrics) RecordCheckoutStarted() {
	m.checkoutsStarted.Inc()
}

// RecordCheckoutCompleted фиксирует оформленный заказ и его сумму.
func (m *ShopMetrics) RecordCheckoutCompleted(grossCents int64) {
	m.checkoutsCompleted.Inc()
	m.orderGrossCents.Observe(float64(grossCents))
}

// RecordCheckoutDuration записывает время оформления заказа.
func (m *ShopMetrics) RecordCheckoutDuration(duration time.Duration) {
	m.checkoutDuration.Observe(duration.Seconds())
}

// RecordProductView увеличивает счётчик просмотров страницы товара.
func (m *ShopMetrics) RecordProductView() {
	m.productViews.Inc()
}
