package catalog

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// Service собирает данные витрины: список товаров и страницу товара.
type Service struct {
	products domain.ProductRepository
	variants domain.VariantRepository
	hearts   domain.HeartRepository
	logger   *log.Entry
}

// NewService конструирует сервис витрины.
func NewService(
	products domain.ProductRepository,
	variants domain.VariantRepository,
	hearts domain.HeartRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog")
	}
	return &Service{
		products: products,
		variants: variants,
		hearts:   hearts,
		logger:   logger,
	}
}

// ListProducts возвращает товары для главной страницы, новые первыми.
func (s *Service) ListProducts(limit int) ([]domain.Product, error) {
	return s.products.List(limit)
}

// ProductDisplay строит модель страницы товара по slug.
// Отсутствующий товар пробрасывается наверх как ErrProductNotFound (страница отдаст 404).
func (s *Service) ProductDisplay(slug string) (DisplayModel, error) {
	product, err := s.products.GetBySlug(slug)
	if err != nil {
		return DisplayModel{}, err
	}

	variants, err := s.variants.ListByProduct(product.ID)
	if err != nil {
		return DisplayModel{}, err
	}

	images, err := s.products.ListImages(product.ID)
	if err != nil {
		return DisplayModel{}, err
	}

	return BuildProductDisplayModel(product, variants, images), nil
}

// ToggleHeart ставит или снимает отметку "нравится" и возвращает новое
// состояние вместе с актуальным счётчиком.
func (s *Service) ToggleHeart(userID, slug string) (hearted bool, count int, err error) {
	product, err := s.products.GetBySlug(slug)
	if err != nil {
		return false, 0, err
	}

	hearted, err = s.hearts.Toggle(userID, product.ID)
	if err != nil {
		return false, 0, err
	}

	count, err = s.hearts.Count(product.ID)
	if err != nil {
		return false, 0, err
	}

	s.logger.WithFields(log.Fields{
		"product": product.Slug,
		"hearted": hearted,
	}).Debug("heart toggled")

	return hearted, count, nil
}
