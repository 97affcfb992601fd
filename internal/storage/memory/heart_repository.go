package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// heartRepositoryInMemory — in-memory реализация HeartRepository.
// Уникальность (user, product) обеспечивается структурой карты.
type heartRepositoryInMemory struct {
	mu    sync.Mutex
	items map[string]map[string]struct{} // product_id -> user_id
}

// NewHeartRepository возвращает in-memory репозиторий отметок "нравится".
func NewHeartRepository() domain.HeartRepository {
	return &heartRepositoryInMemory{
		items: make(map[string]map[string]struct{}),
	}
}

// Toggle ставит или снимает отметку и возвращает итоговое состояние.
func (r *heartRepositoryInMemory) Toggle(userID, productID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrUserRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, ok := r.items[productID]
	if !ok {
		users = make(map[string]struct{})
		r.items[productID] = users
	}

	if _, hearted := users[userID]; hearted {
		delete(users, userID)
		return false, nil
	}
	users[userID] = struct{}{}
	return true, nil
}

// Count возвращает число отметок у товара.
func (r *heartRepositoryInMemory) Count(productID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.items[productID]), nil
}

var _ domain.HeartRepository = (*heartRepositoryInMemory)(nil)
