package domain

import "time"

// Cart — корзина. Для авторизованного пользователя существует не более одной
// (уникальность по UserID); анонимная корзина привязывается к сессии по ID.
type Cart struct {
	ID        string
	UserID    string // пустой для анонимной корзины
	CreatedAt time.Time
}

// CartItem — позиция корзины. Пара (cart, variant) уникальна: повторное
// добавление того же варианта увеличивает Quantity, а не создаёт новую строку.
type CartItem struct {
	ID        string
	CartID    string
	VariantID string
	Quantity  int
}

// CartLine — позиция корзины, обогащённая данными варианта и товара.
// Единый формат выдачи для обоих режимов хранения корзины.
type CartLine struct {
	ItemID   string
	Variant  Variant
	Product  Product
	Quantity int
}

// LineCents возвращает стоимость строки: цена варианта умноженная на количество.
func (l CartLine) LineCents() int64 {
	return l.Variant.PriceGrossCents * int64(l.Quantity)
}

// SubtotalCents суммирует строки корзины в центах.
func SubtotalCents(lines []CartLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.LineCents()
	}
	return sum
}
