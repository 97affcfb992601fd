package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func newTestMetrics() *ShopMetrics {
	return newShopMetricsWithRegisterer(prometheus.NewRegistry())
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestNewShopMetrics(t *testing.T) {
	m := newTestMetrics()

	if m.cartItemsAdded == nil {
		t.Error("cartItemsAdded counter should not be nil")
	}
	if m.cartItemsRemoved == nil {
		t.Error("cartItemsRemoved counter should not be nil")
	}
	if m.couponsApplied == nil {
		t.Error("couponsApplied counter should not be nil")
	}
	if m.couponsRejected == nil {
		t.Error("couponsRejected counter vec should not be nil")
	}
	if m.checkoutDuration == nil {
		t.Error("checkoutDuration histogram should not be nil")
	}
	if m.orderGrossCents == nil {
		t.Error("orderGrossCents histogram should not be nil")
	}
}

func TestRecordCartOperations(t *testing.T) {
	m := newTestMetrics()

	m.RecordCartItemAdded()
	m.RecordCartItemAdded()
	m.RecordCartItemRemoved()

	if got := counterValue(t, m.cartItemsAdded); got != 2 {
		t.Fatalf("cartItemsAdded = %v, want 2", got)
	}
	if got := counterValue(t, m.cartItemsRemoved); got != 1 {
		t.Fatalf("cartItemsRemoved = %v, want 1", got)
	}
}

func TestRecordCoupons(t *testing.T) {
	m := newTestMetrics()

	m.RecordCouponApplied()
	m.RecordCouponRejected("expired")
	m.RecordCouponRejected("expired")
	m.RecordCouponRejected("not_found")

	if got := counterValue(t, m.couponsApplied); got != 1 {
		t.Fatalf("couponsApplied = %v, want 1", got)
	}
	if got := counterValue(t, m.couponsRejected.WithLabelValues("expired")); got != 2 {
		t.Fatalf("couponsRejected[expired] = %v, want 2", got)
	}
}

func TestRecordCheckout(t *testing.T) {
	m := newTestMetrics()

	m.RecordCheckoutStarted()
	m.RecordCheckoutCompleted(8098)
	m.RecordCheckoutDuration(25 * time.Millisecond)

	if got := counterValue(t, m.checkoutsStarted); got != 1 {
		t.Fatalf("checkoutsStarted = %v, want 1", got)
	}
	if got := counterValue(t, m.checkoutsCompleted); got != 1 {
		t.Fatalf("checkoutsCompleted = %v, want 1", got)
	}
}

// Повторная регистрация с тем же registerer не должна паниковать.
func TestDuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := newShopMetricsWithRegisterer(registry)
	second := newShopMetricsWithRegisterer(registry)

	first.RecordCartItemAdded()
	second.RecordCartItemAdded()

	if got := counterValue(t, second.cartItemsAdded); got != 2 {
		t.Fatalf("shared counter = %v, want 2", got)
	}
}
