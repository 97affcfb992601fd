package catalog

import (
	"sort"
	"strings"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// PlaceholderImage подставляется, когда у товара нет ни одного изображения.
var PlaceholderImage = ImageView{
	URL: "/static/img/placeholder.png",
	Alt: "No image available",
}

// VariantSummary — данные варианта, достаточные для кнопок выбора размера.
type VariantSummary struct {
	ID         string
	Size       string
	PriceCents int64
	Stock      int
}

// ImageView — изображение для галереи.
type ImageView struct {
	URL string
	Alt string
}

// DisplayModel — данные страницы товара: подписи цветов в исходном написании
// и группировки вариантов/изображений по нормализованному ключу цвета.
type DisplayModel struct {
	Product         domain.Product
	ColorLabels     []string
	VariantsByColor map[string][]VariantSummary
	ImagesByColor   map[string][]ImageView
}

// NormalizeColor приводит свободно введённый цвет к ключу группировки:
// обрезает пробелы, пустое значение превращает в "one", понижает регистр.
// Исходное написание сохраняется отдельно для подписей.
func NormalizeColor(raw string) string {
	c := strings.TrimSpace(raw)
	if c == "" {
		c = "One"
	}
	return strings.ToLower(c)
}

// BuildProductDisplayModel группирует варианты и изображения товара по цвету.
// Гарантия: каждый ключ цвета в ImagesByColor разрешается хотя бы в одно
// изображение — общий пул, а если и он пуст, то заглушка.
func BuildProductDisplayModel(product domain.Product, variants []domain.Variant, images []domain.ProductImage) DisplayModel {
	m := DisplayModel{
		Product:         product,
		VariantsByColor: make(map[string][]VariantSummary),
		ImagesByColor:   make(map[string][]ImageView),
	}

	// Варианты по возрастанию цены; при равенстве сохраняется порядок вставки.
	sorted := make([]domain.Variant, len(variants))
	copy(sorted, variants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PriceGrossCents < sorted[j].PriceGrossCents
	})

	for _, v := range sorted {
		rawColor := v.Attrs.Color
		if rawColor == "" {
			rawColor = "One"
		}
		key := NormalizeColor(rawColor)

		if !containsLabel(m.ColorLabels, rawColor) {
			m.ColorLabels = append(m.ColorLabels, rawColor)
		}

		m.VariantsByColor[key] = append(m.VariantsByColor[key], VariantSummary{
			ID:         v.ID,
			Size:       v.Attrs.Size,
			PriceCents: v.PriceGrossCents,
			Stock:      v.Stock,
		})
	}

	// Изображения в порядке (sort_order, id); без цвета — в общий пул.
	sortedImages := make([]domain.ProductImage, len(images))
	copy(sortedImages, images)
	sort.SliceStable(sortedImages, func(i, j int) bool {
		if sortedImages[i].SortOrder != sortedImages[j].SortOrder {
			return sortedImages[i].SortOrder < sortedImages[j].SortOrder
		}
		return sortedImages[i].ID < sortedImages[j].ID
	})

	var generic []ImageView
	for _, img := range sortedImages {
		alt := img.Alt
		if alt == "" {
			alt = product.Title
		}
		view := ImageView{URL: img.URL, Alt: alt}
		if img.Color != "" {
			key := NormalizeColor(img.Color)
			m.ImagesByColor[key] = append(m.ImagesByColor[key], view)
		} else {
			generic = append(generic, view)
		}
	}

	keys := make([]string, 0, len(m.ColorLabels))
	for _, label := range m.ColorLabels {
		keys = append(keys, NormalizeColor(label))
	}
	if len(keys) == 0 {
		keys = []string{"one"}
	}
	for _, key := range keys {
		if _, ok := m.ImagesByColor[key]; ok {
			continue
		}
		if len(generic) > 0 {
			m.ImagesByColor[key] = generic
		} else {
			m.ImagesByColor[key] = []ImageView{PlaceholderImage}
		}
	}

	if len(m.ColorLabels) == 0 {
		m.ColorLabels = []string{"One"}
	}

	return m
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
