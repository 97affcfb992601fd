package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) Create(order domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, user_id, status, vat_rate,
			net_total_cents, vat_total_cents, gross_total_cents, discount_cents,
			coupon_code, shipping_method,
			full_name, address_line, city, postal_code, country,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		order.ID, order.UserID, string(order.Status), order.VatRate,
		order.NetTotalCents, order.VatTotalCents, order.GrossTotalCents, order.DiscountCents,
		order.CouponCode, order.ShippingMethod,
		order.Address.FullName, order.Address.AddressLine, order.Address.City,
		order.Address.PostalCode, order.Address.Country,
		order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, product_title, sku, color, size,
				quantity, price_gross_cents, price_net_cents, vat_amount_cents
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`,
			item.ID, order.ID, item.ProductTitle, item.SKU,
			item.Attrs.Color, item.Attrs.Size,
			item.Quantity, item.PriceGrossCents, item.PriceNetCents, item.VatAmountCents,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create order: %w", err)
	}

	return nil
}

const orderColumns = `
	id, user_id, status, vat_rate,
	net_total_cents, vat_total_cents, gross_total_cents, discount_cents,
	coupon_code, shipping_method,
	full_name, address_line, city, postal_code, country,
	created_at`

func scanOrder(scan func(dest ...any) error) (domain.Order, error) {
	var order domain.Order
	var status string
	err := scan(
		&order.ID, &order.UserID, &status, &order.VatRate,
		&order.NetTotalCents, &order.VatTotalCents, &order.GrossTotalCents, &order.DiscountCents,
		&order.CouponCode, &order.ShippingMethod,
		&order.Address.FullName, &order.Address.AddressLine, &order.Address.City,
		&order.Address.PostalCode, &order.Address.Country,
		&order.CreatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	order.Status = domain.OrderStatus(status)
	return order, nil
}

func (r *orderRepository) Get(id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	order, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) ListByUser(userID string, limit int) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, query+` LIMIT $2`, userID, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, query, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		items, err := r.loadItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_title, sku, color, size,
		       quantity, price_gross_cents, price_net_cents, vat_amount_cents
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductTitle, &item.SKU,
			&item.Attrs.Color, &item.Attrs.Size,
			&item.Quantity, &item.PriceGrossCents, &item.PriceNetCents, &item.VatAmountCents,
		); err != nil {
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order item rows: %w", err)
	}

	return items, nil
}

// SavePayment перезаписывает запись об оплате по её идентификатору.
func (r *orderRepository) SavePayment(payment domain.Payment) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (id, order_id, provider, status, amount_cents, currency, external_id, receipt_url, raw)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			external_id = EXCLUDED.external_id,
			receipt_url = EXCLUDED.receipt_url,
			raw = EXCLUDED.raw
	`,
		payment.ID, payment.OrderID, string(payment.Provider), payment.Status,
		payment.AmountCents, payment.Currency, payment.ExternalID, payment.ReceiptURL, payment.Raw,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrOrderNotFound
		}
		return fmt.Errorf("save payment: %w", err)
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

var _ domain.OrderRepository = (*orderRepository)(nil)
