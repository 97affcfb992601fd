package domain

import "time"

// ProductStatus описывает жизненный цикл товара в каталоге.
type ProductStatus string

const (
	// ProductStatusDraft — товар создан, но ещё не опубликован.
	ProductStatusDraft ProductStatus = "draft"
	// ProductStatusActive — товар виден в каталоге и доступен к покупке.
	ProductStatusActive ProductStatus = "active"
	// ProductStatusArchived — товар снят с продажи, но сохранён для истории заказов.
	ProductStatusArchived ProductStatus = "archived"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusActive, ProductStatusArchived:
		return true
	default:
		return false
	}
}

// Product — карточка товара. Варианты и изображения хранятся отдельно
// и привязываются по ProductID.
type Product struct {
	ID          string
	Title       string
	Slug        string
	Description string
	Status      ProductStatus
	PublishedAt *time.Time
	CreatedAt   time.Time
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
func (p *Product) ValidateInvariants() []error {
	var errs []error
	if p.Title == "" {
		errs = append(errs, ErrTitleRequired)
	}
	if p.Slug == "" {
		errs = append(errs, ErrSlugRequired)
	}
	if !p.Status.Valid() {
		errs = append(errs, ErrStatusInvalid)
	}
	return errs
}

// ProductImage — изображение товара. Color пустой для "общих" изображений,
// которые подходят под любой цвет.
type ProductImage struct {
	ID        string
	ProductID string
	URL       string
	Alt       string
	SortOrder int
	Color     string
}

// VariantAttrs — структурированные атрибуты варианта. Color и Size читаются
// логикой витрины; Extra оставлен для будущих атрибутов.
type VariantAttrs struct {
	Color string
	Size  string
	Extra map[string]string
}

// Variant — конкретная покупаемая конфигурация товара со своей ценой и остатком.
// Уникальность комбинаций атрибутов не гарантируется моделью данных.
type Variant struct {
	ID              string
	ProductID       string
	PriceGrossCents int64
	Stock           int
	Attrs           VariantAttrs
}

// Label возвращает человекочитаемую подпись варианта ("EU 43 · Black" или "One").
func (v Variant) Label() string {
	switch {
	case v.Attrs.Size != "" && v.Attrs.Color != "":
		return v.Attrs.Size + " · " + v.Attrs.Color
	case v.Attrs.Size != "":
		return v.Attrs.Size
	case v.Attrs.Color != "":
		return v.Attrs.Color
	default:
		return "One"
	}
}

// Heart — отметка "нравится" от пользователя; уникальна для пары (user, product).
type Heart struct {
	UserID    string
	ProductID string
	CreatedAt time.Time
}
