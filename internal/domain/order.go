package domain

import "time"

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusNew — заказ создан, оплата ещё не подтверждена.
	OrderStatusNew OrderStatus = "new"
	// OrderStatusPaid — оплата подтверждена провайдером.
	OrderStatusPaid OrderStatus = "paid"
	// OrderStatusFailed — оплата не состоялась.
	OrderStatusFailed OrderStatus = "failed"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusPaid, OrderStatusFailed:
		return true
	default:
		return false
	}
}

// Address — минимальный адрес доставки, фиксируемый в заказе.
type Address struct {
	FullName    string
	AddressLine string
	City        string
	PostalCode  string
	Country     string
}

// OrderItem — снимок позиции на момент покупки. Цены и НДС копируются из
// корзины, чтобы последующие изменения каталога не меняли историю.
type OrderItem struct {
	ID              string
	OrderID         string
	ProductTitle    string
	SKU             string
	Attrs           VariantAttrs
	Quantity        int
	PriceGrossCents int64
	PriceNetCents   int64
	VatAmountCents  int64
}

// Order — завершённая покупка с зафиксированными итогами в центах.
type Order struct {
	ID     string
	UserID string
	Status OrderStatus

	VatRate         float64
	NetTotalCents   int64
	VatTotalCents   int64
	GrossTotalCents int64
	DiscountCents   int64
	CouponCode      string

	ShippingMethod   string
	ShippingFeeCents int64
	Address          Address

	Items     []OrderItem
	CreatedAt time.Time
}

// ValidateInvariants проверяет согласованность итогов заказа.
func (o *Order) ValidateInvariants() []error {
	var errs []error
	if o.UserID == "" {
		errs = append(errs, ErrUserRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrOrderItemsRequired)
	}
	if !o.Status.Valid() {
		errs = append(errs, ErrStatusInvalid)
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ErrQuantityInvalid)
		}
		if item.PriceGrossCents < 0 {
			errs = append(errs, ErrVariantPriceInvalid)
		}
	}
	return errs
}

// PaymentProvider — код платёжного провайдера.
type PaymentProvider string

const (
	PaymentProviderStripe   PaymentProvider = "stripe"
	PaymentProviderPayPal   PaymentProvider = "paypal"
	PaymentProviderCoinbase PaymentProvider = "coinbase"
)

// Payment — запись об оплате заказа: провайдер, внешняя ссылка и сырой
// ответ провайдера как есть.
type Payment struct {
	ID          string
	OrderID     string
	Provider    PaymentProvider
	Status      string
	AmountCents int64
	Currency    string
	ExternalID  string
	ReceiptURL  string
	Raw         []byte
}
