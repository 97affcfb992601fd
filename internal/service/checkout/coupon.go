package checkout

import (
	"errors"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// CouponStatus — явный исход поиска промокода. Вызывающая сторона сама
// решает, игнорировать неудачу или чистить сохранённый код.
type CouponStatus string

const (
	// CouponFound — купон существует и действует прямо сейчас.
	CouponFound CouponStatus = "found"
	// CouponNotFound — кода не существует.
	CouponNotFound CouponStatus = "not_found"
	// CouponInactive — купон выключен администратором.
	CouponInactive CouponStatus = "inactive"
	// CouponExpired — купон вне окна действия.
	CouponExpired CouponStatus = "expired"
)

// CouponLookup — результат поиска купона по коду.
type CouponLookup struct {
	Status CouponStatus
	Coupon domain.Coupon
}

// Applicable сообщает, можно ли применять найденный купон.
func (l CouponLookup) Applicable() bool {
	return l.Status == CouponFound
}

// FindApplicableCoupon ищет действующий купон по коду без учёта регистра.
// Неудачный исход — не ошибка: протухший код просто перестаёт применяться.
func (s *Service) FindApplicableCoupon(code string, now time.Time) (CouponLookup, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return CouponLookup{Status: CouponNotFound}, nil
	}

	coupon, err := s.coupons.GetByCode(code)
	if err != nil {
		if errors.Is(err, domain.ErrCouponNotFound) {
			return CouponLookup{Status: CouponNotFound}, nil
		}
		return CouponLookup{}, err
	}

	if !coupon.Active {
		return CouponLookup{Status: CouponInactive, Coupon: coupon}, nil
	}
	if !coupon.ValidAt(now) {
		return CouponLookup{Status: CouponExpired, Coupon: coupon}, nil
	}
	return CouponLookup{Status: CouponFound, Coupon: coupon}, nil
}
