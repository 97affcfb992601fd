package domain

import "time"

// ProductRepository описывает требования к хранилищу каталога.
type ProductRepository interface {
	// Create сохраняет новый товар. Возвращает ErrDuplicate при конфликте slug.
	Create(product Product) error
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(id string) (Product, error)
	// GetBySlug возвращает товар по slug или ErrProductNotFound.
	GetBySlug(slug string) (Product, error)
	// List возвращает товары, новые первыми, с опциональным ограничением количества.
	List(limit int) ([]Product, error)
	// CreateImage добавляет изображение товара.
	CreateImage(image ProductImage) error
	// ListImages возвращает изображения товара в порядке (sort_order, id).
	ListImages(productID string) ([]ProductImage, error)
}

// VariantRepository описывает требования к хранилищу вариантов.
type VariantRepository interface {
	// Create сохраняет вариант товара.
	Create(variant Variant) error
	// Get возвращает вариант по идентификатору или ErrVariantNotFound.
	Get(id string) (Variant, error)
	// ListByProduct возвращает варианты товара по возрастанию цены (при равенстве — по id).
	ListByProduct(productID string) ([]Variant, error)
	// ListByIDs возвращает варианты по списку идентификаторов; отсутствующие молча пропускаются.
	ListByIDs(ids []string) ([]Variant, error)
}

// CartRepository описывает требования к хранилищу корзин.
// Атомарность get-or-create и upsert позиций лежит на реализации:
// уникальные ограничения (user) и (cart, variant) защищают от гонок.
type CartRepository interface {
	// GetOrCreateByUser возвращает корзину пользователя, создавая её при первом обращении.
	GetOrCreateByUser(userID string) (Cart, error)
	// Get возвращает корзину по идентификатору или ErrCartNotFound.
	Get(id string) (Cart, error)
	// CreateAnonymous создаёт корзину без владельца (идентификатор хранится в сессии).
	CreateAnonymous() (Cart, error)
	// AddItem увеличивает количество существующей позиции (cart, variant)
	// или вставляет новую с указанным количеством.
	AddItem(cartID, variantID string, qty int) (CartItem, error)
	// RemoveItemByVariant удаляет позицию корзины; отсутствие позиции — не ошибка.
	RemoveItemByVariant(cartID, variantID string) error
	// ListItems возвращает позиции корзины в порядке добавления.
	ListItems(cartID string) ([]CartItem, error)
	// Clear удаляет все позиции корзины (после оформления заказа).
	Clear(cartID string) error
}

// CouponRepository описывает требования к хранилищу промокодов.
// Купоны создаются и отключаются администратором вне ядра; ядро только читает.
type CouponRepository interface {
	// Create сохраняет купон. Возвращает ErrDuplicate при конфликте кода.
	Create(coupon Coupon) error
	// GetByCode возвращает купон по коду без учёта регистра или ErrCouponNotFound.
	GetByCode(code string) (Coupon, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет заказ вместе с позициями.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(id string) (Order, error)
	// ListByUser возвращает заказы пользователя, новые первыми.
	ListByUser(userID string, limit int) ([]Order, error)
	// SavePayment сохраняет (или обновляет) запись об оплате заказа.
	SavePayment(payment Payment) error
}

// InviteRepository описывает требования к хранилищу инвайтов.
type InviteRepository interface {
	// Create сохраняет новый инвайт.
	Create(invite Invite) error
	// GetByToken возвращает инвайт по токену или ErrInviteNotFound.
	GetByToken(token string) (Invite, error)
	// Redeem атомарно увеличивает счётчик использований действующего инвайта.
	// Возвращает ErrInviteExhausted, если инвайт просрочен или исчерпан.
	Redeem(token, userID string, now time.Time) (Invite, error)
}

// HeartRepository описывает требования к хранилищу отметок "нравится".
type HeartRepository interface {
	// Toggle ставит или снимает отметку; возвращает итоговое состояние.
	Toggle(userID, productID string) (hearted bool, err error)
	// Count возвращает число отметок у товара.
	Count(productID string) (int, error)
}
