package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/service/cart"
	"github.com/vladislavdragonenkov/shop/internal/service/catalog"
	"github.com/vladislavdragonenkov/shop/internal/service/checkout"
	"github.com/vladislavdragonenkov/shop/internal/service/httpapi"
	"github.com/vladislavdragonenkov/shop/internal/service/invite"
	"github.com/vladislavdragonenkov/shop/internal/service/payment"
	"github.com/vladislavdragonenkov/shop/internal/session"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

// client гоняет запросы через собранный Routes, перенося cookie между ними
// как это делал бы браузер.
type client struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
	userID  string
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == httpapi.SessionCookie {
			c.cookie = cookie
		}
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type testEnv struct {
	handler http.Handler
	invites *invite.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	entry := logger.WithField("component", "test")

	products := memory.NewProductRepository()
	variants := memory.NewVariantRepository()
	hearts := memory.NewHeartRepository()
	cartRepo := memory.NewCartRepository()
	coupons := memory.NewCouponRepository()
	orders := memory.NewOrderRepository()
	inviteRepo := memory.NewInviteRepository()

	require.NoError(t, products.Create(domain.Product{
		ID: "p1", Title: "Sneaker", Slug: "sneaker", Status: domain.ProductStatusActive,
	}))
	require.NoError(t, variants.Create(domain.Variant{
		ID: "v1", ProductID: "p1", PriceGrossCents: 2999, Stock: 10,
		Attrs: domain.VariantAttrs{Color: "Black", Size: "EU 42"},
	}))
	require.NoError(t, coupons.Create(domain.Coupon{
		ID: "c1", Code: "TEN", PercentOff: 10, MinSubtotalCents: 5000, Active: true,
	}))

	pricing := domain.PricingConfig{VatRate: 0.19, PricesIncludeVat: true, HomeCountry: "DE", Currency: "EUR"}
	carts := cart.NewDatabaseStore(cartRepo, variants, products, nil, entry)
	catalogSvc := catalog.NewService(products, variants, hearts, entry)
	checkoutSvc := checkout.NewService(carts, coupons, orders, pricing, nil, nil, entry)
	inviteSvc := invite.NewService(inviteRepo, 0, entry)

	srv := httpapi.NewServer(
		catalogSvc,
		carts,
		checkoutSvc,
		inviteSvc,
		payment.NewStubRegistry(),
		session.NewStore(),
		pricing,
		nil,
		entry,
	)
	return &testEnv{handler: srv.Routes(), invites: inviteSvc}
}

func TestProductEndpoints(t *testing.T) {
	env := newTestEnv(t)
	c := &client{t: t, handler: env.handler}

	rec := c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Len(t, body["products"], 1)

	rec = c.do(http.MethodGet, "/p/sneaker", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	product := body["product"].(map[string]any)
	require.Equal(t, "Sneaker", product["title"])

	rec = c.do(http.MethodGet, "/p/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t)
	c := &client{t: t, handler: env.handler}

	rec := c.do(http.MethodPost, "/cart/add", url.Values{"variant_id": {"v1"}, "qty": {"3"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, float64(8997), body["subtotal_cents"])

	// Cookie переносит анонимную корзину между запросами.
	rec = c.do(http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	require.Len(t, body["lines"], 1)

	rec = c.do(http.MethodPost, "/cart/remove", url.Values{"variant_id": {"v1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	require.Empty(t, body["lines"])
}

func TestCartAddUnknownVariant(t *testing.T) {
	env := newTestEnv(t)
	c := &client{t: t, handler: env.handler}

	rec := c.do(http.MethodPost, "/cart/add", url.Values{"variant_id": {"ghost"}})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodPost, "/cart/add", url.Values{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCouponFlow(t *testing.T) {
	env := newTestEnv(t)
	c := &client{t: t, handler: env.handler}

	c.do(http.MethodPost, "/cart/add", url.Values{"variant_id": {"v1"}, "qty": {"3"}})

	rec := c.do(http.MethodPost, "/coupon/apply", url.Values{"code": {"TEN"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, true, body["applicable"])

	rec = c.do(http.MethodGet, "/cart", nil)
	body = decode(t, rec)
	require.Equal(t, float64(899), body["discount_cents"])
	require.Equal(t, float64(8098), body["gross_cents"])
	require.Equal(t, "TEN", body["coupon_code"])

	rec = c.do(http.MethodPost, "/coupon/remove", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/cart", nil)
	body = decode(t, rec)
	require.Equal(t, float64(0), body["discount_cents"])

	rec = c.do(http.MethodPost, "/coupon/apply", url.Values{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutFlow(t *testing.T) {
	env := newTestEnv(t)
	c := &client{t: t, handler: env.handler, userID: "u1"}

	c.do(http.MethodPost, "/cart/add", url.Values{"variant_id": {"v1"}, "qty": {"2"}})

	rec := c.do(http.MethodPost, "/checkout", url.Values{
		"full_name": {"Max Mustermann"},
		"city":      {"Berlin"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	require.Equal(t, float64(5998), body["gross_total_cents"])
	orderID := body["id"].(string)

	rec = c.do(http.MethodGet, "/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	require.Len(t, body["items"], 1)

	// Корзина опустела после оформления.
	rec = c.do(http.MethodGet, "/cart", nil)
	body = decode(t, rec)
	require.Empty(t, body["lines"])
}

func TestOrderHistory(t *testing.T) {
	env := newTestEnv(t)
	c := &client{t: t, handler: env.handler, userID: "u1"}

	c.do(http.MethodPost, "/cart/add", url.Values{"variant_id": {"v1"}, "qty": {"1"}})
	rec := c.do(http.MethodPost, "/checkout", url.Values{"city": {"Berlin"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID := decode(t, rec)["id"].(string)

	rec = c.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	orders := body["orders"].([]any)
	require.Len(t, orders, 1)
	require.Equal(t, orderID, orders[0].(map[string]any)["id"])

	// Чужой пользователь видит пустую историю.
	other := &client{t: t, handler: env.handler, userID: "u2"}
	rec = other.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode(t, rec)["orders"])

	// Анонимной сессии история недоступна.
	anon := &client{t: t, handler: env.handler}
	rec = anon.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodGet, "/orders?limit=bad", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutRequiresUser(t *testing.T) {
	env := newTestEnv(t)
	c := &client{t: t, handler: env.handler}

	c.do(http.MethodPost, "/cart/add", url.Values{"variant_id": {"v1"}})

	rec := c.do(http.MethodPost, "/checkout", url.Values{})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPaymentStubsRespondHonestly(t *testing.T) {
	env := newTestEnv(t)
	c := &client{t: t, handler: env.handler, userID: "u1"}

	c.do(http.MethodPost, "/cart/add", url.Values{"variant_id": {"v1"}})
	rec := c.do(http.MethodPost, "/checkout", url.Values{})
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID := decode(t, rec)["id"].(string)

	for _, path := range []string{"/pay/stripe/create", "/pay/paypal/create", "/pay/coinbase/create"} {
		rec := c.do(http.MethodPost, path, url.Values{"order_id": {orderID}})
		require.Equal(t, http.StatusBadRequest, rec.Code, path)
		body := decode(t, rec)
		require.Contains(t, body["error"], "not wired yet")
	}

	rec = c.do(http.MethodPost, "/pay/paypal/capture/"+orderID, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInviteEndpoint(t *testing.T) {
	env := newTestEnv(t)

	inv, err := env.invites.Create(1)
	require.NoError(t, err)

	anon := &client{t: t, handler: env.handler}
	rec := anon.do(http.MethodGet, "/invite/"+inv.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, float64(1), body["uses_left"])

	// Авторизованный визит гасит инвайт, второй визит получает 410.
	user := &client{t: t, handler: env.handler, userID: "u1"}
	rec = user.do(http.MethodGet, "/invite/"+inv.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = user.do(http.MethodGet, "/invite/"+inv.Token, nil)
	require.Equal(t, http.StatusGone, rec.Code)

	rec = anon.do(http.MethodGet, "/invite/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHeartEndpoint(t *testing.T) {
	env := newTestEnv(t)

	user := &client{t: t, handler: env.handler, userID: "u1"}
	rec := user.do(http.MethodPost, "/products/sneaker/heart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, true, body["hearted"])
	require.Equal(t, float64(1), body["count"])

	rec = user.do(http.MethodPost, "/products/sneaker/heart", nil)
	body = decode(t, rec)
	require.Equal(t, false, body["hearted"])
	require.Equal(t, float64(0), body["count"])

	anon := &client{t: t, handler: env.handler}
	rec = anon.do(http.MethodPost, "/products/sneaker/heart", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
