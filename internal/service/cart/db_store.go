package cart

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
	"github.com/vladislavdragonenkov/shop/internal/session"
)

// databaseStore — корзина поверх репозиториев. Авторизованный пользователь
// получает единственную корзину get-or-create; аноним — корзину, чей id
// хранится в сессии.
type databaseStore struct {
	carts    domain.CartRepository
	variants domain.VariantRepository
	products domain.ProductRepository
	logger   *log.Entry
	metrics  *metrics.ShopMetrics
}

// NewDatabaseStore возвращает корзину, хранящую строки в репозитории.
func NewDatabaseStore(
	carts domain.CartRepository,
	variants domain.VariantRepository,
	products domain.ProductRepository,
	m *metrics.ShopMetrics,
	logger *log.Entry,
) Store {
	if logger == nil {
		logger = log.WithField("component", "cart-db")
	}
	return &databaseStore{
		carts:    carts,
		variants: variants,
		products: products,
		logger:   logger,
		metrics:  m,
	}
}

func (s *databaseStore) GetOrCreate(id Identity) (Handle, error) {
	if id.UserID != "" {
		c, err := s.carts.GetOrCreateByUser(id.UserID)
		if err != nil {
			return Handle{}, err
		}
		return Handle{cartID: c.ID}, nil
	}

	// Анонимный посетитель: id корзины живёт в сессии.
	if id.Session != nil {
		if cid := id.Session.GetString(session.KeyCartID); cid != "" {
			c, err := s.carts.Get(cid)
			if err == nil {
				return Handle{cartID: c.ID}, nil
			}
			if !errors.Is(err, domain.ErrCartNotFound) {
				return Handle{}, err
			}
			// Сессия ссылается на удалённую корзину, заводим новую.
		}
	}

	c, err := s.carts.CreateAnonymous()
	if err != nil {
		return Handle{}, err
	}
	if id.Session != nil {
		id.Session.Set(session.KeyCartID, c.ID)
	}
	return Handle{cartID: c.ID}, nil
}

func (s *databaseStore) AddItem(h Handle, variantID string, qty int) error {
	if qty <= 0 {
		qty = 1
	}

	// Вариант обязан существовать; промах уходит наверх как 404.
	if _, err := s.variants.Get(variantID); err != nil {
		return err
	}

	if _, err := s.carts.AddItem(h.cartID, variantID, qty); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordCartItemAdded()
	}
	return nil
}

func (s *databaseStore) RemoveItem(h Handle, variantID string) error {
	if err := s.carts.RemoveItemByVariant(h.cartID, variantID); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordCartItemRemoved()
	}
	return nil
}

func (s *databaseStore) ListItems(h Handle) ([]domain.CartLine, error) {
	items, err := s.carts.ListItems(h.cartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []domain.CartLine{}, nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.VariantID)
	}
	variants, err := s.variants.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Variant, len(variants))
	for _, v := range variants {
		byID[v.ID] = v
	}

	lines := make([]domain.CartLine, 0, len(items))
	for _, it := range items {
		v, ok := byID[it.VariantID]
		if !ok {
			// Вариант удалён из каталога после добавления; строку молча пропускаем.
			s.logger.WithField("variant_id", it.VariantID).Debug("cart references missing variant")
			continue
		}
		product, err := s.products.Get(v.ProductID)
		if err != nil {
			if domain.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		lines = append(lines, domain.CartLine{
			ItemID:   it.ID,
			Variant:  v,
			Product:  product,
			Quantity: it.Quantity,
		})
	}
	return lines, nil
}

func (s *databaseStore) Clear(h Handle) error {
	return s.carts.Clear(h.cartID)
}

var _ Store = (*databaseStore)(nil)
