package invite

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

func newService(ttl time.Duration) (*Service, domain.InviteRepository) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	repo := memory.NewInviteRepository()
	return NewService(repo, ttl, logger.WithField("component", "test")), repo
}

func TestCreateAndValidate(t *testing.T) {
	svc, _ := newService(0)

	invite, err := svc.Create(2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if invite.Token == "" {
		t.Fatal("expected non-empty token")
	}
	if invite.MaxUses != 2 {
		t.Fatalf("max uses = %d, want 2", invite.MaxUses)
	}
	got := invite.ExpiresAt.Sub(invite.CreatedAt)
	if got != domain.DefaultInviteTTL {
		t.Fatalf("ttl = %s, want %s", got, domain.DefaultInviteTTL)
	}

	if _, err := svc.Validate(invite.Token); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if _, err := svc.Validate("missing"); !errors.Is(err, domain.ErrInviteNotFound) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateDefaultsSingleUse(t *testing.T) {
	svc, _ := newService(0)

	invite, err := svc.Create(0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if invite.MaxUses != 1 {
		t.Fatalf("max uses = %d, want 1", invite.MaxUses)
	}
}

func TestRedeemExhaustsInvite(t *testing.T) {
	svc, _ := newService(0)

	invite, err := svc.Create(1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	redeemed, err := svc.Redeem(invite.Token, "u1")
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if redeemed.Uses != 1 || redeemed.UsedBy != "u1" {
		t.Fatalf("unexpected redeemed state: %+v", redeemed)
	}

	if _, err := svc.Redeem(invite.Token, "u2"); !errors.Is(err, domain.ErrInviteExhausted) {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Validate(invite.Token); !errors.Is(err, domain.ErrInviteExhausted) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedeemRequiresUser(t *testing.T) {
	svc, _ := newService(0)

	invite, err := svc.Create(1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Redeem(invite.Token, ""); !errors.Is(err, domain.ErrUserRequired) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateExpiredInvite(t *testing.T) {
	svc, _ := newService(time.Nanosecond)

	invite, err := svc.Create(1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(time.Millisecond)

	if _, err := svc.Validate(invite.Token); !errors.Is(err, domain.ErrInviteExhausted) {
		t.Fatalf("unexpected error: %v", err)
	}
}
