package domain

import "time"

// DefaultInviteTTL — срок жизни инвайта по умолчанию.
const DefaultInviteTTL = 30 * time.Minute

// Invite — одноразовая (или ограниченная по числу использований) ссылка-приглашение
// в закрытый магазин. Token непрозрачный и уникальный.
type Invite struct {
	ID        string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	MaxUses   int
	Uses      int
	UsedBy    string // пустой, пока инвайт никем не использован
	UsedAt    *time.Time
}

// ValidAt сообщает, можно ли ещё воспользоваться инвайтом в момент now.
func (i *Invite) ValidAt(now time.Time) bool {
	return i.Uses < i.MaxUses && now.Before(i.ExpiresAt)
}
