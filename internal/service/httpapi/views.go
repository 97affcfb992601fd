package httpapi

import (
	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/service/catalog"
	"github.com/vladislavdragonenkov/shop/internal/service/checkout"
)

// productView — строка списка товаров.
type productView struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
}

func newProductView(p domain.Product) productView {
	return productView{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status),
	}
}

// variantView — вариант на странице товара.
type variantView struct {
	ID           string `json:"id"`
	Size         string `json:"size,omitempty"`
	PriceCents   int64  `json:"price_cents"`
	PriceDisplay string `json:"price_display"`
	Stock        int    `json:"stock"`
}

// imageView — изображение галереи.
type imageView struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// productPageView — модель страницы товара с группировкой по цветам.
type productPageView struct {
	Product         productView              `json:"product"`
	ColorLabels     []string                 `json:"color_labels"`
	VariantsByColor map[string][]variantView `json:"variants_by_color"`
	ImagesByColor   map[string][]imageView   `json:"images_by_color"`
}

func newProductPageView(m catalog.DisplayModel) productPageView {
	view := productPageView{
		Product:         newProductView(m.Product),
		ColorLabels:     m.ColorLabels,
		VariantsByColor: make(map[string][]variantView, len(m.VariantsByColor)),
		ImagesByColor:   make(map[string][]imageView, len(m.ImagesByColor)),
	}
	for color, variants := range m.VariantsByColor {
		vs := make([]variantView, 0, len(variants))
		for _, v := range variants {
			vs = append(vs, variantView{
				ID:           v.ID,
				Size:         v.Size,
				PriceCents:   v.PriceCents,
				PriceDisplay: domain.Euro(v.PriceCents),
				Stock:        v.Stock,
			})
		}
		view.VariantsByColor[color] = vs
	}
	for color, images := range m.ImagesByColor {
		is := make([]imageView, 0, len(images))
		for _, img := range images {
			is = append(is, imageView{URL: img.URL, Alt: img.Alt})
		}
		view.ImagesByColor[color] = is
	}
	return view
}

// cartLineView — строка корзины.
type cartLineView struct {
	VariantID      string `json:"variant_id"`
	ProductTitle   string `json:"product_title"`
	VariantLabel   string `json:"variant_label"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineCents      int64  `json:"line_cents"`
}

// cartViewResponse — корзина с итогами. Все суммы в центах,
// display-поля отформатированы в немецкой локали.
type cartViewResponse struct {
	OK             bool           `json:"ok"`
	Lines          []cartLineView `json:"lines"`
	SubtotalCents  int64          `json:"subtotal_cents"`
	DiscountCents  int64          `json:"discount_cents"`
	NetCents       int64          `json:"net_cents"`
	VatCents       int64          `json:"vat_cents"`
	GrossCents     int64          `json:"gross_cents"`
	GrossDisplay   string         `json:"gross_display"`
	VatRatePercent float64        `json:"vat_rate_percent"`
	CouponCode     string         `json:"coupon_code,omitempty"`
}

func newCartViewResponse(totals checkout.CartTotals) cartViewResponse {
	resp := cartViewResponse{
		OK:             true,
		Lines:          make([]cartLineView, 0, len(totals.Lines)),
		SubtotalCents:  totals.SubtotalCents,
		DiscountCents:  totals.DiscountCents,
		NetCents:       totals.NetCents,
		VatCents:       totals.VatCents,
		GrossCents:     totals.GrossCents,
		GrossDisplay:   domain.Euro(totals.GrossCents),
		VatRatePercent: totals.VatRatePercent,
	}
	if totals.AppliedCoupon != nil {
		resp.CouponCode = totals.AppliedCoupon.Code
	}
	for _, line := range totals.Lines {
		resp.Lines = append(resp.Lines, cartLineView{
			VariantID:      line.Variant.ID,
			ProductTitle:   line.Product.Title,
			VariantLabel:   line.Variant.Label(),
			Quantity:       line.Quantity,
			UnitPriceCents: line.Variant.PriceGrossCents,
			LineCents:      line.LineCents(),
		})
	}
	return resp
}

// orderItemView — позиция заказа в ответе API.
type orderItemView struct {
	ProductTitle    string `json:"product_title"`
	SKU             string `json:"sku"`
	Quantity        int    `json:"quantity"`
	PriceGrossCents int64  `json:"price_gross_cents"`
	PriceNetCents   int64  `json:"price_net_cents"`
	VatAmountCents  int64  `json:"vat_amount_cents"`
}

// orderView — заказ в ответе API.
type orderView struct {
	OK              bool            `json:"ok"`
	ID              string          `json:"id"`
	Status          string          `json:"status"`
	NetTotalCents   int64           `json:"net_total_cents"`
	VatTotalCents   int64           `json:"vat_total_cents"`
	GrossTotalCents int64           `json:"gross_total_cents"`
	GrossDisplay    string          `json:"gross_display"`
	DiscountCents   int64           `json:"discount_cents"`
	CouponCode      string          `json:"coupon_code,omitempty"`
	ShippingMethod  string          `json:"shipping_method"`
	Items           []orderItemView `json:"items"`
}

func newOrderView(o domain.Order) orderView {
	view := orderView{
		OK:              true,
		ID:              o.ID,
		Status:          string(o.Status),
		NetTotalCents:   o.NetTotalCents,
		VatTotalCents:   o.VatTotalCents,
		GrossTotalCents: o.GrossTotalCents,
		GrossDisplay:    domain.Euro(o.GrossTotalCents),
		DiscountCents:   o.DiscountCents,
		CouponCode:      o.CouponCode,
		ShippingMethod:  o.ShippingMethod,
		Items:           make([]orderItemView, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		view.Items = append(view.Items, orderItemView{
			ProductTitle:    item.ProductTitle,
			SKU:             item.SKU,
			Quantity:        item.Quantity,
			PriceGrossCents: item.PriceGrossCents,
			PriceNetCents:   item.PriceNetCents,
			VatAmountCents:  item.VatAmountCents,
		})
	}
	return view
}
