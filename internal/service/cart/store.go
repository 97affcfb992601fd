// Package cart реализует корзину в двух режимах хранения: строки в базе
// (авторизованный пользователь либо анонимная корзина с id в сессии) и
// чистая сессионная карта, когда персистентный слой не сконфигурирован.
// Режим выбирается один раз при сборке приложения.
package cart

import (
	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/session"
)

// Identity определяет, чья корзина запрашивается: идентификатор
// авторизованного пользователя и/или сессия посетителя.
type Identity struct {
	UserID  string
	Session *session.Session
}

// Handle — непрозрачная ссылка на открытую корзину. Содержимое зависит
// от режима: id строки корзины либо сама сессия.
type Handle struct {
	cartID string
	sess   *session.Session
}

// Store — единый контракт корзины для обоих режимов хранения.
// Удаление адресуется идентификатором варианта в обоих режимах.
type Store interface {
	// GetOrCreate возвращает корзину для данной identity, лениво создавая её.
	GetOrCreate(id Identity) (Handle, error)
	// AddItem добавляет qty единиц варианта; существующая позиция увеличивается.
	// Остаток на складе при добавлении не проверяется.
	AddItem(h Handle, variantID string, qty int) error
	// RemoveItem убирает позицию варианта целиком; отсутствие позиции — no-op.
	RemoveItem(h Handle, variantID string) error
	// ListItems возвращает позиции корзины, обогащённые вариантом и товаром.
	ListItems(h Handle) ([]domain.CartLine, error)
	// Clear опустошает корзину (после оформления заказа).
	Clear(h Handle) error
}
