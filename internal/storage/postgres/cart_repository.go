package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository создаёт PostgreSQL-реализацию CartRepository.
func NewCartRepository(store *Store) domain.CartRepository {
	return &cartRepository{db: store.DB()}
}

// GetOrCreateByUser полагается на частичный уникальный индекс по user_id:
// при гонке проигравший INSERT ничего не вставляет и перечитывает строку.
func (r *cartRepository) GetOrCreateByUser(userID string) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, domain.ErrUserRequired
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	cart := domain.Cart{ID: uuid.NewString(), UserID: userID, CreatedAt: time.Now().UTC()}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO carts (id, user_id, created_at)
		VALUES ($1,$2,$3)
		ON CONFLICT DO NOTHING
	`, cart.ID, cart.UserID, cart.CreatedAt)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("insert cart: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 1 {
		return cart, nil
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at FROM carts WHERE user_id = $1
	`, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("select cart by user: %w", err)
	}
	return cart, nil
}

func (r *cartRepository) Get(id string) (domain.Cart, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var cart domain.Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at FROM carts WHERE id = $1
	`, id).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("select cart: %w", err)
	}
	return cart, nil
}

func (r *cartRepository) CreateAnonymous() (domain.Cart, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	cart := domain.Cart{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO carts (id, user_id, created_at) VALUES ($1,'',$2)
	`, cart.ID, cart.CreatedAt); err != nil {
		return domain.Cart{}, fmt.Errorf("insert anonymous cart: %w", err)
	}
	return cart, nil
}

// AddItem использует upsert по (cart_id, variant_id): повторное добавление
// того же варианта увеличивает количество.
func (r *cartRepository) AddItem(cartID, variantID string, qty int) (domain.CartItem, error) {
	if qty <= 0 {
		return domain.CartItem{}, domain.ErrQuantityInvalid
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.Get(cartID); err != nil {
		return domain.CartItem{}, err
	}

	item := domain.CartItem{CartID: cartID, VariantID: variantID}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (id, cart_id, variant_id, quantity)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (cart_id, variant_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity
	`, uuid.NewString(), cartID, variantID, qty).Scan(&item.ID, &item.Quantity)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("upsert cart item: %w", err)
	}
	return item, nil
}

func (r *cartRepository) RemoveItemByVariant(cartID, variantID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE cart_id = $1 AND variant_id = $2
	`, cartID, variantID); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

func (r *cartRepository) ListItems(cartID string) ([]domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, cart_id, variant_id, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at, id
	`, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.CartItem, 0)
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.VariantID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart item rows: %w", err)
	}

	return items, nil
}

func (r *cartRepository) Clear(cartID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE cart_id = $1
	`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

var _ domain.CartRepository = (*cartRepository)(nil)
