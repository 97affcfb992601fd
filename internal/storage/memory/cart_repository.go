package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// cartRepositoryInMemory — in-memory реализация CartRepository.
// Позиции хранятся срезом, чтобы сохранить порядок добавления.
type cartRepositoryInMemory struct {
	mu     sync.Mutex
	carts  map[string]domain.Cart
	byUser map[string]string            // user_id -> cart_id
	items  map[string][]domain.CartItem // cart_id -> позиции
}

// NewCartRepository возвращает in-memory репозиторий корзин.
func NewCartRepository() domain.CartRepository {
	return &cartRepositoryInMemory{
		carts:  make(map[string]domain.Cart),
		byUser: make(map[string]string),
		items:  make(map[string][]domain.CartItem),
	}
}

// GetOrCreateByUser возвращает корзину пользователя, создавая её при первом
// обращении. Уникальность "одна корзина на пользователя" держится на byUser.
func (r *cartRepositoryInMemory) GetOrCreateByUser(userID string) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, domain.ErrUserRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byUser[userID]; ok {
		return r.carts[id], nil
	}

	cart := domain.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	r.carts[cart.ID] = cart
	r.byUser[userID] = cart.ID
	return cart, nil
}

// Get возвращает корзину или ErrCartNotFound.
func (r *cartRepositoryInMemory) Get(id string) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[id]
	if !ok {
		return domain.Cart{}, domain.ErrCartNotFound
	}
	return cart, nil
}

// CreateAnonymous создаёт корзину без владельца.
func (r *cartRepositoryInMemory) CreateAnonymous() (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart := domain.Cart{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	r.carts[cart.ID] = cart
	return cart, nil
}

// AddItem увеличивает количество существующей позиции (cart, variant)
// либо добавляет новую строку с указанным количеством.
func (r *cartRepositoryInMemory) AddItem(cartID, variantID string, qty int) (domain.CartItem, error) {
	if qty <= 0 {
		return domain.CartItem{}, domain.ErrQuantityInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cartID]; !ok {
		return domain.CartItem{}, domain.ErrCartNotFound
	}

	items := r.items[cartID]
	for i, it := range items {
		if it.VariantID == variantID {
			items[i].Quantity += qty
			return items[i], nil
		}
	}

	item := domain.CartItem{
		ID:        uuid.NewString(),
		CartID:    cartID,
		VariantID: variantID,
		Quantity:  qty,
	}
	r.items[cartID] = append(items, item)
	return item, nil
}

// RemoveItemByVariant удаляет позицию; отсутствие позиции — не ошибка.
func (r *cartRepositoryInMemory) RemoveItemByVariant(cartID, variantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.items[cartID]
	for i, it := range items {
		if it.VariantID == variantID {
			r.items[cartID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListItems возвращает позиции корзины в порядке добавления.
func (r *cartRepositoryInMemory) ListItems(cartID string) ([]domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cartID]; !ok {
		return nil, domain.ErrCartNotFound
	}

	items := make([]domain.CartItem, len(r.items[cartID]))
	copy(items, r.items[cartID])
	return items, nil
}

// Clear удаляет все позиции корзины.
func (r *cartRepositoryInMemory) Clear(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, cartID)
	return nil
}

var _ domain.CartRepository = (*cartRepositoryInMemory)(nil)
