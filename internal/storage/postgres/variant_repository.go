package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type variantRepository struct {
	db *sql.DB
}

// NewVariantRepository создаёт PostgreSQL-реализацию VariantRepository.
func NewVariantRepository(store *Store) domain.VariantRepository {
	return &variantRepository{db: store.DB()}
}

func (r *variantRepository) Create(variant domain.Variant) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	extra, err := encodeExtra(variant.Attrs.Extra)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO variants (id, product_id, price_gross_cents, stock, color, size, extra)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		variant.ID, variant.ProductID, variant.PriceGrossCents, variant.Stock,
		variant.Attrs.Color, variant.Attrs.Size, extra,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

func (r *variantRepository) Get(id string) (domain.Variant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT id, product_id, price_gross_cents, stock, color, size, extra
		FROM variants
		WHERE id = $1
	`, id)

	v, err := scanVariantRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Variant{}, domain.ErrVariantNotFound
		}
		return domain.Variant{}, fmt.Errorf("select variant: %w", err)
	}
	return v, nil
}

func (r *variantRepository) ListByProduct(productID string) ([]domain.Variant, error) {
	return r.list(`
		SELECT id, product_id, price_gross_cents, stock, color, size, extra
		FROM variants
		WHERE product_id = $1
		ORDER BY price_gross_cents, id
	`, productID)
}

func (r *variantRepository) ListByIDs(ids []string) ([]domain.Variant, error) {
	if len(ids) == 0 {
		return []domain.Variant{}, nil
	}
	// Отсутствующие идентификаторы просто не попадают в выдачу.
	return r.list(`
		SELECT id, product_id, price_gross_cents, stock, color, size, extra
		FROM variants
		WHERE id = ANY($1)
		ORDER BY price_gross_cents, id
	`, ids)
}

func (r *variantRepository) list(query string, arg any) ([]domain.Variant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	variants := make([]domain.Variant, 0)
	for rows.Next() {
		v, err := scanVariantRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan variant row: %w", err)
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variant rows: %w", err)
	}

	return variants, nil
}

func scanVariantRow(scan func(dest ...any) error) (domain.Variant, error) {
	var v domain.Variant
	var extra []byte
	if err := scan(&v.ID, &v.ProductID, &v.PriceGrossCents, &v.Stock,
		&v.Attrs.Color, &v.Attrs.Size, &extra); err != nil {
		return domain.Variant{}, err
	}
	if len(extra) > 0 {
		if err := json.Unmarshal(extra, &v.Attrs.Extra); err != nil {
			return domain.Variant{}, fmt.Errorf("decode variant extra attrs: %w", err)
		}
	}
	if len(v.Attrs.Extra) == 0 {
		v.Attrs.Extra = nil
	}
	return v, nil
}

func encodeExtra(extra map[string]string) ([]byte, error) {
	if len(extra) == 0 {
		return []byte("{}"), nil
	}
	raw, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("encode variant extra attrs: %w", err)
	}
	return raw, nil
}

var _ domain.VariantRepository = (*variantRepository)(nil)
