package payment

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

func TestStub(t *testing.T) {
	stub := NewStub(domain.PaymentProviderStripe)
	if stub.Name() != domain.PaymentProviderStripe {
		t.Fatalf("unexpected name: %s", stub.Name())
	}

	_, err := stub.CreateCheckout(CheckoutRequest{OrderID: "o-1", AmountCents: 100, Currency: "EUR"})
	if !errors.Is(err, domain.ErrPaymentProviderUnavailable) {
		t.Fatalf("unexpected create error: %v", err)
	}

	_, err = stub.Capture("ext-1")
	if !errors.Is(err, domain.ErrPaymentProviderUnavailable) {
		t.Fatalf("unexpected capture error: %v", err)
	}

	if stub.CreateCalls != 1 || stub.CaptureCalls != 1 {
		t.Fatalf("unexpected call counters: create=%d capture=%d", stub.CreateCalls, stub.CaptureCalls)
	}
}

func TestRegistry(t *testing.T) {
	registry := NewStubRegistry()

	for _, name := range []domain.PaymentProvider{
		domain.PaymentProviderStripe,
		domain.PaymentProviderPayPal,
		domain.PaymentProviderCoinbase,
	} {
		p, ok := registry.Get(name)
		if !ok {
			t.Fatalf("provider %s not registered", name)
		}
		if p.Name() != name {
			t.Fatalf("provider name mismatch: %s", p.Name())
		}
	}

	if _, ok := registry.Get("unknown"); ok {
		t.Fatal("unknown provider must not resolve")
	}
}
