package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// orderRepositoryInMemory — in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu       sync.RWMutex
	items    map[string]domain.Order
	payments map[string]domain.Payment // по order_id
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items:    make(map[string]domain.Order),
		payments: make(map[string]domain.Payment),
	}
}

// Create сохраняет новый заказ, если ID ещё не занят.
func (r *orderRepositoryInMemory) Create(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return domain.ErrDuplicate
	}
	// Сохраняем копию позиций, чтобы избежать мутаций извне.
	order.Items = append([]domain.OrderItem(nil), order.Items...)
	r.items[order.ID] = order
	return nil
}

// Get возвращает заказ или ErrOrderNotFound.
func (r *orderRepositoryInMemory) Get(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	order.Items = append([]domain.OrderItem(nil), order.Items...)
	return order, nil
}

// ListByUser возвращает заказы пользователя, новые первыми.
func (r *orderRepositoryInMemory) ListByUser(userID string, limit int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, order := range r.items {
		if order.UserID != userID {
			continue
		}
		order.Items = append([]domain.OrderItem(nil), order.Items...)
		result = append(result, order)
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

// SavePayment сохраняет или перезаписывает запись об оплате заказа.
func (r *orderRepositoryInMemory) SavePayment(payment domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[payment.OrderID]; !ok {
		return domain.ErrOrderNotFound
	}
	r.payments[payment.OrderID] = payment
	return nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
