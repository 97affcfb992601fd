package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type heartRepository struct {
	db *sql.DB
}

// NewHeartRepository создаёт PostgreSQL-реализацию HeartRepository.
func NewHeartRepository(store *Store) domain.HeartRepository {
	return &heartRepository{db: store.DB()}
}

// Toggle сначала пытается снять отметку; если снимать нечего, ставит новую.
func (r *heartRepository) Toggle(userID, productID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrUserRequired
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM hearts WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return false, fmt.Errorf("delete heart: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected > 0 {
		return false, nil
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO hearts (user_id, product_id) VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, userID, productID); err != nil {
		return false, fmt.Errorf("insert heart: %w", err)
	}
	return true, nil
}

func (r *heartRepository) Count(productID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var count int
	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM hearts WHERE product_id = $1
	`, productID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count hearts: %w", err)
	}
	return count, nil
}

var _ domain.HeartRepository = (*heartRepository)(nil)
