// Package payment содержит интеграции с платёжными провайдерами.
// Все провайдеры пока заглушки: эндпоинты существуют, но честно
// отвечают, что интеграция не подключена.
package payment

import (
	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// CheckoutRequest — данные заказа, передаваемые провайдеру.
type CheckoutRequest struct {
	OrderID     string
	AmountCents int64
	Currency    string
	Description string
}

// CheckoutSession — ответ провайдера на создание платёжной сессии.
type CheckoutSession struct {
	Provider   domain.PaymentProvider
	ExternalID string
	PayURL     string
}

// Provider — общий контракт платёжного провайдера.
type Provider interface {
	// Name возвращает код провайдера.
	Name() domain.PaymentProvider
	// CreateCheckout создаёт платёжную сессию для заказа.
	CreateCheckout(req CheckoutRequest) (CheckoutSession, error)
	// Capture подтверждает ранее созданный платёж.
	Capture(externalID string) (domain.Payment, error)
}

// Registry хранит провайдеров по коду.
type Registry struct {
	providers map[domain.PaymentProvider]Provider
}

// NewRegistry регистрирует переданных провайдеров.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[domain.PaymentProvider]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Get возвращает провайдера по коду.
func (r *Registry) Get(name domain.PaymentProvider) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// NewStubRegistry возвращает реестр со всеми тремя заглушками.
func NewStubRegistry() *Registry {
	return NewRegistry(
		NewStub(domain.PaymentProviderStripe),
		NewStub(domain.PaymentProviderPayPal),
		NewStub(domain.PaymentProviderCoinbase),
	)
}
