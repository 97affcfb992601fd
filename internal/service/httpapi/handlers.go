package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/service/cart"
	"github.com/vladislavdragonenkov/shop/internal/service/payment"
	"github.com/vladislavdragonenkov/shop/internal/session"
)

// identity собирает идентичность корзины из сессии запроса.
func (s *Server) identity(r *http.Request) cart.Identity {
	sess := requestSession(r)
	id := cart.Identity{Session: sess}
	if sess != nil {
		id.UserID = sess.GetString(session.KeyUserID)
	}
	return id
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	products, err := s.catalog.ListProducts(limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "products": views})
}

func (s *Server) handleProductPage(w http.ResponseWriter, r *http.Request) {
	model, err := s.catalog.ProductDisplay(r.PathValue("slug"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.RecordProductView()
	}
	writeJSON(w, http.StatusOK, newProductPageView(model))
}

func (s *Server) handleCartView(w http.ResponseWriter, r *http.Request) {
	totals, err := s.checkout.CartView(s.identity(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartViewResponse(totals))
}

type cartAddForm struct {
	VariantID string `schema:"variant_id"`
	Qty       int    `schema:"qty"`
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var form cartAddForm
	if err := s.decodeForm(r, &form); err != nil {
		s.writeBadRequest(w, "malformed form")
		return
	}
	if form.VariantID == "" {
		s.writeBadRequest(w, "variant_id is required")
		return
	}

	id := s.identity(r)
	h, err := s.carts.GetOrCreate(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.carts.AddItem(h, form.VariantID, form.Qty); err != nil {
		s.writeError(w, r, err)
		return
	}

	totals, err := s.checkout.CartView(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartViewResponse(totals))
}

type cartRemoveForm struct {
	VariantID string `schema:"variant_id"`
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	var form cartRemoveForm
	if err := s.decodeForm(r, &form); err != nil {
		s.writeBadRequest(w, "malformed form")
		return
	}
	if form.VariantID == "" {
		s.writeBadRequest(w, "variant_id is required")
		return
	}

	id := s.identity(r)
	h, err := s.carts.GetOrCreate(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.carts.RemoveItem(h, form.VariantID); err != nil {
		s.writeError(w, r, err)
		return
	}

	totals, err := s.checkout.CartView(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartViewResponse(totals))
}

type couponForm struct {
	Code string `schema:"code"`
}

func (s *Server) handleCouponApply(w http.ResponseWriter, r *http.Request) {
	var form couponForm
	if err := s.decodeForm(r, &form); err != nil {
		s.writeBadRequest(w, "malformed form")
		return
	}
	if form.Code == "" {
		s.writeError(w, r, domain.ErrCouponCodeRequired)
		return
	}

	lookup, err := s.checkout.ApplyCouponCode(requestSession(r), form.Code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"status":     lookup.Status,
		"applicable": lookup.Applicable(),
	})
}

func (s *Server) handleCouponRemove(w http.ResponseWriter, r *http.Request) {
	s.checkout.RemoveCouponCode(requestSession(r))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type checkoutForm struct {
	FullName    string `schema:"full_name"`
	AddressLine string `schema:"address_line"`
	City        string `schema:"city"`
	PostalCode  string `schema:"postal_code"`
	Country     string `schema:"country"`
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var form checkoutForm
	if err := s.decodeForm(r, &form); err != nil {
		s.writeBadRequest(w, "malformed form")
		return
	}

	order, err := s.checkout.PlaceOrder(s.identity(r), domain.Address{
		FullName:    form.FullName,
		AddressLine: form.AddressLine,
		City:        form.City,
		PostalCode:  form.PostalCode,
		Country:     form.Country,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newOrderView(order))
}

// handleListOrders отдаёт историю заказов текущего пользователя.
func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	orders, err := s.checkout.ListOrders(s.identity(r), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "orders": views})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.checkout.GetOrder(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderView(order))
}

// handleInvite проверяет инвайт и привязывает его к сессии. Авторизованный
// пользователь сразу гасит инвайт, анонимный — только резервирует токен.
func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	inv, err := s.invites.Validate(token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess := requestSession(r)
	sess.Set(session.KeyInviteToken, token)

	userID := sess.GetString(session.KeyUserID)
	if userID != "" {
		if inv, err = s.invites.Redeem(token, userID); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"expires_at": inv.ExpiresAt.Format(time.RFC3339),
		"uses_left":  inv.MaxUses - inv.Uses,
	})
}

func (s *Server) handleHeart(w http.ResponseWriter, r *http.Request) {
	userID := requestSession(r).GetString(session.KeyUserID)
	hearted, count, err := s.catalog.ToggleHeart(userID, r.PathValue("slug"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"hearted": hearted,
		"count":   count,
	})
}

// paymentRequest строит запрос провайдеру по сохранённому заказу.
func (s *Server) paymentRequest(order domain.Order) payment.CheckoutRequest {
	return payment.CheckoutRequest{
		OrderID:     order.ID,
		AmountCents: order.GrossTotalCents,
		Currency:    s.pricing.Currency,
		Description: "Order " + order.ID,
	}
}

type payCreateForm struct {
	OrderID string `schema:"order_id"`
}

// handlePayCreate создаёт платёжную сессию у провайдера.
// Пока все провайдеры — заглушки, ответ всегда 400 с честной причиной.
func (s *Server) handlePayCreate(name domain.PaymentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := s.payments.Get(name)
		if !ok {
			s.writeError(w, r, domain.ErrPaymentProviderUnavailable)
			return
		}

		var form payCreateForm
		if err := s.decodeForm(r, &form); err != nil {
			s.writeBadRequest(w, "malformed form")
			return
		}
		if form.OrderID == "" {
			s.writeBadRequest(w, "order_id is required")
			return
		}

		order, err := s.checkout.GetOrder(form.OrderID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		sessionInfo, err := provider.CreateCheckout(s.paymentRequest(order))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":          true,
			"provider":    sessionInfo.Provider,
			"external_id": sessionInfo.ExternalID,
			"pay_url":     sessionInfo.PayURL,
		})
	}
}

func (s *Server) handlePayCapture(name domain.PaymentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := s.payments.Get(name)
		if !ok {
			s.writeError(w, r, domain.ErrPaymentProviderUnavailable)
			return
		}

		pay, err := provider.Capture(r.PathValue("orderID"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":       true,
			"status":   pay.Status,
			"order_id": pay.OrderID,
		})
	}
}
