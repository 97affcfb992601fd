package kafka

import "time"

// EventType определяет тип события магазина.
type EventType string

const (
	// EventTypeOrderPlaced — заказ оформлен и ждёт оплаты.
	EventTypeOrderPlaced EventType = "order.placed"
	// EventTypeOrderPaid — оплата заказа подтверждена.
	EventTypeOrderPaid EventType = "order.paid"
	// EventTypeOrderFailed — оплата заказа не состоялась.
	EventTypeOrderFailed EventType = "order.failed"
)

// Topics для Kafka
const (
	TopicOrderEvents = "shop.order.events"
)

// OrderEvent представляет событие жизненного цикла заказа.
type OrderEvent struct {
	EventType       EventType `json:"event_type"`
	OrderID         string    `json:"order_id"`
	UserID          string    `json:"user_id"`
	Status          string    `json:"status"`
	GrossTotalCents int64     `json:"gross_total_cents"`
	Currency        string    `json:"currency"`
	CouponCode      string    `json:"coupon_code,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewOrderPlacedEvent создаёт событие об оформленном заказе.
func NewOrderPlacedEvent(orderID, userID string, grossTotalCents int64, currency, couponCode string) OrderEvent {
	return OrderEvent{
		EventType:       EventTypeOrderPlaced,
		OrderID:         orderID,
		UserID:          userID,
		Status:          "new",
		GrossTotalCents: grossTotalCents,
		Currency:        currency,
		CouponCode:      couponCode,
		Timestamp:       time.Now().UTC(),
	}
}
