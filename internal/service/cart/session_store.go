package cart

import (
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
	"github.com/vladislavdragonenkov/shop/internal/session"
)

// sessionStore — эфемерная корзина: карта variant_id -> количество прямо
// в сессии. Живёт ровно столько, сколько сессия.
type sessionStore struct {
	variants domain.VariantRepository
	products domain.ProductRepository
	logger   *log.Entry
	metrics  *metrics.ShopMetrics
}

// NewSessionStore возвращает корзину, хранящую состояние только в сессии.
func NewSessionStore(
	variants domain.VariantRepository,
	products domain.ProductRepository,
	m *metrics.ShopMetrics,
	logger *log.Entry,
) Store {
	if logger == nil {
		logger = log.WithField("component", "cart-session")
	}
	return &sessionStore{
		variants: variants,
		products: products,
		logger:   logger,
		metrics:  m,
	}
}

func (s *sessionStore) GetOrCreate(id Identity) (Handle, error) {
	if id.Session == nil {
		return Handle{}, domain.ErrCartNotFound
	}
	return Handle{sess: id.Session}, nil
}

// quantities достаёт карту корзины из сессии, починив повреждённое значение.
func quantities(sess *session.Session) map[string]int {
	v, ok := sess.Get(session.KeyCart)
	if !ok {
		return map[string]int{}
	}
	m, ok := v.(map[string]int)
	if !ok {
		return map[string]int{}
	}
	return m
}

func (s *sessionStore) AddItem(h Handle, variantID string, qty int) error {
	if qty <= 0 {
		qty = 1
	}
	m := quantities(h.sess)
	m[variantID] += qty
	// Set заодно помечает сессию изменённой для сохранения бэкендом.
	h.sess.Set(session.KeyCart, m)
	if s.metrics != nil {
		s.metrics.RecordCartItemAdded()
	}
	return nil
}

func (s *sessionStore) RemoveItem(h Handle, variantID string) error {
	m := quantities(h.sess)
	if _, ok := m[variantID]; !ok {
		// Нечего удалять — не ошибка.
		return nil
	}
	delete(m, variantID)
	h.sess.Set(session.KeyCart, m)
	if s.metrics != nil {
		s.metrics.RecordCartItemRemoved()
	}
	return nil
}

func (s *sessionStore) ListItems(h Handle) ([]domain.CartLine, error) {
	m := quantities(h.sess)
	if len(m) == 0 {
		return []domain.CartLine{}, nil
	}

	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids) // детерминированный порядок выдачи

	variants, err := s.variants.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Variant, len(variants))
	for _, v := range variants {
		byID[v.ID] = v
	}

	lines := make([]domain.CartLine, 0, len(m))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			// Неизвестный вариант в сессии молча пропускается.
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
			// В сессионном режиме позицию идентифицирует сам вариант.
			ItemID:   id,
			Variant:  v,
			Product:  product,
			Quantity: m[id],
		})
	}
	return lines, nil
}

func (s *sessionStore) Clear(h Handle) error {
	h.sess.Delete(session.KeyCart)
	return nil
}

var _ Store = (*sessionStore)(nil)
