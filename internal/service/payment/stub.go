package payment

import (
	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// Stub — провайдер без реальной интеграции. Любая операция возвращает
// ErrPaymentProviderUnavailable, чтобы маршруты и формы можно было
// проверять до подключения настоящих ключей.
type Stub struct {
	name domain.PaymentProvider

	CreateCalls  int
	CaptureCalls int
}

// NewStub возвращает заглушку для указанного провайдера.
func NewStub(name domain.PaymentProvider) *Stub {
	return &Stub{name: name}
}

// Name возвращает код провайдера.
func (s *Stub) Name() domain.PaymentProvider {
	return s.name
}

// CreateCheckout считает вызов и сообщает, что интеграция не подключена.
func (s *Stub) CreateCheckout(req CheckoutRequest) (CheckoutSession, error) {
	s.CreateCalls++
	return CheckoutSession{}, domain.ErrPaymentProviderUnavailable
}

// Capture считает вызов и сообщает, что интеграция не подключена.
func (s *Stub) Capture(externalID string) (domain.Payment, error) {
	s.CaptureCalls++
	return domain.Payment{}, domain.ErrPaymentProviderUnavailable
}

var _ Provider = (*Stub)(nil)
