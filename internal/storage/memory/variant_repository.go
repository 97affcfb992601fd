package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// variantRepositoryInMemory — in-memory реализация VariantRepository.
type variantRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Variant
}

// NewVariantRepository возвращает in-memory репозиторий вариантов.
func NewVariantRepository() domain.VariantRepository {
	return &variantRepositoryInMemory{
		items: make(map[string]domain.Variant),
	}
}

// Create сохраняет вариант, если id ещё не занят.
func (r *variantRepositoryInMemory) Create(variant domain.Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[variant.ID]; exists {
		return domain.ErrDuplicate
	}
	r.items[variant.ID] = variant
	return nil
}

// Get возвращает вариант или ErrVariantNotFound.
func (r *variantRepositoryInMemory) Get(id string) (domain.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	variant, ok := r.items[id]
	if !ok {
		return domain.Variant{}, domain.ErrVariantNotFound
	}
	return variant, nil
}

// ListByProduct возвращает варианты товара по возрастанию цены, затем id.
func (r *variantRepositoryInMemory) ListByProduct(productID string) ([]domain.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Variant, 0)
	for _, v := range r.items {
		if v.ProductID == productID {
			result = append(result, v)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].PriceGrossCents != result[j].PriceGrossCents {
			return result[i].PriceGrossCents < result[j].PriceGrossCents
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// ListByIDs возвращает найденные варианты; отсутствующие id пропускаются молча.
func (r *variantRepositoryInMemory) ListByIDs(ids []string) ([]domain.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Variant, 0, len(ids))
	for _, id := range ids {
		if v, ok := r.items[id]; ok {
			result = append(result, v)
		}
	}
	return result, nil
}

var _ domain.VariantRepository = (*variantRepositoryInMemory)(nil)
