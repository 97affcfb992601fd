package memory

import (
	"sync"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// inviteRepositoryInMemory — in-memory реализация InviteRepository.
type inviteRepositoryInMemory struct {
	mu    sync.Mutex
	items map[string]domain.Invite // по токену
}

// NewInviteRepository возвращает in-memory репозиторий инвайтов.
func NewInviteRepository() domain.InviteRepository {
	return &inviteRepositoryInMemory{
		items: make(map[string]domain.Invite),
	}
}

// Create сохраняет инвайт; конфликт токена — ErrDuplicate.
func (r *inviteRepositoryInMemory) Create(invite domain.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[invite.Token]; exists {
		return domain.ErrDuplicate
	}
	r.items[invite.Token] = invite
	return nil
}

// GetByToken возвращает инвайт или ErrInviteNotFound.
func (r *inviteRepositoryInMemory) GetByToken(token string) (domain.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invite, ok := r.items[token]
	if !ok {
		return domain.Invite{}, domain.ErrInviteNotFound
	}
	return invite, nil
}

// Redeem атомарно расходует одно использование действующего инвайта.
func (r *inviteRepositoryInMemory) Redeem(token, userID string, now time.Time) (domain.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invite, ok := r.items[token]
	if !ok {
		return domain.Invite{}, domain.ErrInviteNotFound
	}
	if !invite.ValidAt(now) {
		return domain.Invite{}, domain.ErrInviteExhausted
	}

	invite.Uses++
	if invite.UsedBy == "" {
		invite.UsedBy = userID
		usedAt := now
		invite.UsedAt = &usedAt
	}
	r.items[token] = invite
	return invite, nil
}

var _ domain.InviteRepository = (*inviteRepositoryInMemory)(nil)
