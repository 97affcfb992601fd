package memory

import (
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// couponRepositoryInMemory — in-memory реализация CouponRepository.
// Ключ — код купона в нижнем регистре, поэтому поиск нечувствителен к регистру.
type couponRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Coupon
}

// NewCouponRepository возвращает in-memory репозиторий промокодов.
func NewCouponRepository() domain.CouponRepository {
	return &couponRepositoryInMemory{
		items: make(map[string]domain.Coupon),
	}
}

// Create сохраняет купон; конфликт кода — ErrDuplicate.
func (r *couponRepositoryInMemory) Create(coupon domain.Coupon) error {
	key := strings.ToLower(coupon.Code)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return domain.ErrDuplicate
	}
	r.items[key] = coupon
	return nil
}

// GetByCode возвращает купон без учёта регистра кода или ErrCouponNotFound.
func (r *couponRepositoryInMemory) GetByCode(code string) (domain.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coupon, ok := r.items[strings.ToLower(code)]
	if !ok {
		return domain.Coupon{}, domain.ErrCouponNotFound
	}
	return coupon, nil
}

var _ domain.CouponRepository = (*couponRepositoryInMemory)(nil)
