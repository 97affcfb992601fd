// Package invite выдаёт и погашает ссылки-приглашения в закрытый магазин.
package invite

import (
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// Service управляет жизненным циклом инвайтов.
type Service struct {
	invites domain.InviteRepository
	ttl     time.Duration
	logger  *log.Entry
}

// NewService конструирует сервис инвайтов. При ttl <= 0 берётся срок по умолчанию.
func NewService(invites domain.InviteRepository, ttl time.Duration, logger *log.Entry) *Service {
	if ttl <= 0 {
		ttl = domain.DefaultInviteTTL
	}
	if logger == nil {
		logger = log.WithField("component", "invite")
	}
	return &Service{invites: invites, ttl: ttl, logger: logger}
}

// Create выпускает новый инвайт на maxUses использований.
func (s *Service) Create(maxUses int) (domain.Invite, error) {
	if maxUses <= 0 {
		maxUses = 1
	}
	now := time.Now().UTC()
	invite := domain.Invite{
		ID:        uuid.NewString(),
		Token:     strings.ReplaceAll(uuid.NewString(), "-", ""),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		MaxUses:   maxUses,
	}
	if err := s.invites.Create(invite); err != nil {
		return domain.Invite{}, err
	}
	s.logger.WithFields(log.Fields{
		"invite_id": invite.ID,
		"max_uses":  invite.MaxUses,
	}).Info("invite issued")
	return invite, nil
}

// Validate проверяет, действует ли инвайт с данным токеном, не погашая его.
func (s *Service) Validate(token string) (domain.Invite, error) {
	invite, err := s.invites.GetByToken(token)
	if err != nil {
		return domain.Invite{}, err
	}
	if !invite.ValidAt(time.Now().UTC()) {
		return domain.Invite{}, domain.ErrInviteExhausted
	}
	return invite, nil
}

// Redeem погашает инвайт от имени пользователя userID.
func (s *Service) Redeem(token, userID string) (domain.Invite, error) {
	if userID == "" {
		return domain.Invite{}, domain.ErrUserRequired
	}
	invite, err := s.invites.Redeem(token, userID, time.Now().UTC())
	if err != nil {
		return domain.Invite{}, err
	}
	s.logger.WithFields(log.Fields{
		"invite_id": invite.ID,
		"uses":      invite.Uses,
	}).Info("invite redeemed")
	return invite, nil
}
