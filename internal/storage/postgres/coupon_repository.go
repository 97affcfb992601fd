package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type couponRepository struct {
	db *sql.DB
}

// NewCouponRepository создаёт PostgreSQL-реализацию CouponRepository.
func NewCouponRepository(store *Store) domain.CouponRepository {
	return &couponRepository{db: store.DB()}
}

func (r *couponRepository) Create(coupon domain.Coupon) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO coupons (id, code, percent_off, amount_off_cents, min_subtotal_cents, valid_from, valid_to, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		coupon.ID, coupon.Code, coupon.PercentOff, coupon.AmountOffCents,
		coupon.MinSubtotalCents, coupon.ValidFrom, coupon.ValidTo, coupon.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

func (r *couponRepository) GetByCode(code string) (domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var coupon domain.Coupon
	err := r.db.QueryRowContext(ctx, `
		SELECT id, code, percent_off, amount_off_cents, min_subtotal_cents, valid_from, valid_to, active
		FROM coupons
		WHERE LOWER(code) = LOWER($1)
	`, code).Scan(
		&coupon.ID, &coupon.Code, &coupon.PercentOff, &coupon.AmountOffCents,
		&coupon.MinSubtotalCents, &coupon.ValidFrom, &coupon.ValidTo, &coupon.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Coupon{}, domain.ErrCouponNotFound
		}
		return domain.Coupon{}, fmt.Errorf("select coupon: %w", err)
	}
	return coupon, nil
}

var _ domain.CouponRepository = (*couponRepository)(nil)
