package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[string]domain.Product
	images map[string][]domain.ProductImage // по product_id
}

// NewProductRepository возвращает in-memory репозиторий каталога
// для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items:  make(map[string]domain.Product),
		images: make(map[string][]domain.ProductImage),
	}
}

// Create сохраняет товар, если id и slug ещё не заняты.
func (r *productRepositoryInMemory) Create(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; exists {
		return domain.ErrDuplicate
	}
	for _, p := range r.items {
		if strings.EqualFold(p.Slug, product.Slug) {
			return domain.ErrDuplicate
		}
	}
	r.items[product.ID] = product
	return nil
}

// Get возвращает товар или ErrProductNotFound.
func (r *productRepositoryInMemory) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// GetBySlug возвращает товар по slug или ErrProductNotFound.
func (r *productRepositoryInMemory) GetBySlug(slug string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// List возвращает товары, новые первыми, ограничивая выборку limit (если >0).
func (r *productRepositoryInMemory) List(limit int) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, p := range r.items {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

// CreateImage добавляет изображение товара.
func (r *productRepositoryInMemory) CreateImage(image domain.ProductImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.images[image.ProductID] = append(r.images[image.ProductID], image)
	return nil
}

// ListImages возвращает изображения товара в порядке (sort_order, id).
func (r *productRepositoryInMemory) ListImages(productID string) ([]domain.ProductImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	images := make([]domain.ProductImage, len(r.images[productID]))
	copy(images, r.images[productID])

	sort.Slice(images, func(i, j int) bool {
		if images[i].SortOrder != images[j].SortOrder {
			return images[i].SortOrder < images[j].SortOrder
		}
		return images[i].ID < images[j].ID
	})

	return images, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
