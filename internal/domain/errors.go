package domain

import "errors"

var (
	// Ошибка пустого заголовка товара.
	ErrTitleRequired = errors.New("product title is required")
	// Ошибка пустого slug товара.
	ErrSlugRequired = errors.New("product slug is required")
	// Ошибка недопустимого статуса товара.
	ErrStatusInvalid = errors.New("product status is invalid")
	// Ошибка отрицательной цены варианта.
	ErrVariantPriceInvalid = errors.New("variant price must be non-negative")
	// Ошибка при некорректном количестве в корзине (<= 0).
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
	// Ошибка пустого кода купона.
	ErrCouponCodeRequired = errors.New("coupon code is required")
	// Ошибка купона с двумя типами скидки одновременно.
	ErrCouponDiscountAmbiguous = errors.New("set either percent_off or amount_off_cents, not both")
	// Ошибка отрицательной ставки НДС.
	ErrVatRateInvalid = errors.New("vat rate must be non-negative")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrOrderItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отсутствующего идентификатора пользователя.
	ErrUserRequired = errors.New("user_id is required")

	// ErrProductNotFound возвращается, если товар не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")
	// ErrVariantNotFound возвращается, если вариант товара не найден.
	ErrVariantNotFound = errors.New("variant not found")
	// ErrCartNotFound возвращается, если корзина не найдена.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound возвращается, если позиция корзины не найдена.
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrCouponNotFound возвращается, если купон с таким кодом не существует.
	ErrCouponNotFound = errors.New("coupon not found")
	// ErrOrderNotFound возвращается, если заказ не найден.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInviteNotFound возвращается, если инвайт-токен не существует.
	ErrInviteNotFound = errors.New("invite not found")
	// ErrInviteExhausted — инвайт просрочен или исчерпал лимит использований.
	ErrInviteExhausted = errors.New("invite expired or exhausted")
	// ErrDuplicate сигнализирует о нарушении ограничения уникальности при вставке.
	ErrDuplicate = errors.New("duplicate record")

	// ErrPaymentProviderUnavailable — платёжный провайдер не подключён.
	ErrPaymentProviderUnavailable = errors.New("payment provider is not wired yet")
)

// IsNotFound проверяет, относится ли ошибка к классу "запись не найдена".
// Страница поверх ядра транслирует такие ошибки в HTTP 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrVariantNotFound) ||
		errors.Is(err, ErrCartNotFound) ||
		errors.Is(err, ErrCartItemNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrInviteNotFound)
}
