package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type inviteRepository struct {
	db *sql.DB
}

// NewInviteRepository создаёт PostgreSQL-реализацию InviteRepository.
func NewInviteRepository(store *Store) domain.InviteRepository {
	return &inviteRepository{db: store.DB()}
}

func (r *inviteRepository) Create(invite domain.Invite) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invites (id, token, created_at, expires_at, max_uses, uses, used_by, used_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		invite.ID, invite.Token, invite.CreatedAt, invite.ExpiresAt,
		invite.MaxUses, invite.Uses, invite.UsedBy, invite.UsedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invite: %w", err)
	}
	return nil
}

const inviteColumns = `id, token, created_at, expires_at, max_uses, uses, used_by, used_at`

func (r *inviteRepository) GetByToken(token string) (domain.Invite, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	invite, err := scanInvite(r.db.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE token = $1`, token).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Invite{}, domain.ErrInviteNotFound
		}
		return domain.Invite{}, fmt.Errorf("select invite: %w", err)
	}
	return invite, nil
}

// Redeem инкрементирует счётчик одним условным UPDATE: параллельные
// погашения не могут превысить max_uses.
func (r *inviteRepository) Redeem(token, userID string, now time.Time) (domain.Invite, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	invite, err := scanInvite(r.db.QueryRowContext(ctx, `
		UPDATE invites
		SET uses = uses + 1,
		    used_by = CASE WHEN used_by = '' THEN $2 ELSE used_by END,
		    used_at = COALESCE(used_at, $3)
		WHERE token = $1
		  AND uses < max_uses
		  AND expires_at > $3
		RETURNING `+inviteColumns, token, userID, now).Scan)
	if err == nil {
		return invite, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Invite{}, fmt.Errorf("redeem invite: %w", err)
	}

	// UPDATE никого не затронул: либо токена нет, либо инвайт не действует.
	if _, getErr := r.GetByToken(token); getErr != nil {
		return domain.Invite{}, getErr
	}
	return domain.Invite{}, domain.ErrInviteExhausted
}

func scanInvite(scan func(dest ...any) error) (domain.Invite, error) {
	var invite domain.Invite
	err := scan(
		&invite.ID, &invite.Token, &invite.CreatedAt, &invite.ExpiresAt,
		&invite.MaxUses, &invite.Uses, &invite.UsedBy, &invite.UsedAt,
	)
	if err != nil {
		return domain.Invite{}, err
	}
	return invite, nil
}

var _ domain.InviteRepository = (*inviteRepository)(nil)
