// Package httpapi — JSON API магазина поверх net/http.
// Формы декодируются через gorilla/schema, ответы всегда JSON.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
	"github.com/vladislavdragonenkov/shop/internal/service/cart"
	"github.com/vladislavdragonenkov/shop/internal/service/catalog"
	"github.com/vladislavdragonenkov/shop/internal/service/checkout"
	"github.com/vladislavdragonenkov/shop/internal/service/invite"
	"github.com/vladislavdragonenkov/shop/internal/service/payment"
	"github.com/vladislavdragonenkov/shop/internal/session"
)

// SessionCookie — имя cookie с идентификатором серверной сессии.
const SessionCookie = "shop_session"

type contextKey string

const sessionContextKey contextKey = "session"

// Server связывает сервисы магазина с HTTP-маршрутами.
type Server struct {
	catalog  *catalog.Service
	carts    cart.Store
	checkout *checkout.Service
	invites  *invite.Service
	payments *payment.Registry
	sessions *session.Store
	pricing  domain.PricingConfig
	metrics  *metrics.ShopMetrics
	logger   *log.Entry
	decoder  *schema.Decoder
}

// NewServer конструирует HTTP-сервер магазина.
func NewServer(
	catalogSvc *catalog.Service,
	carts cart.Store,
	checkoutSvc *checkout.Service,
	inviteSvc *invite.Service,
	payments *payment.Registry,
	sessions *session.Store,
	pricing domain.PricingConfig,
	m *metrics.ShopMetrics,
	logger *log.Entry,
) *Server {
	if logger == nil {
		logger = log.WithField("component", "httpapi")
	}
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Server{
		catalog:  catalogSvc,
		carts:    carts,
		checkout: checkoutSvc,
		invites:  inviteSvc,
		payments: payments,
		sessions: sessions,
		pricing:  pricing,
		metrics:  m,
		logger:   logger,
		decoder:  decoder,
	}
}

// Routes собирает маршрутизатор со всеми эндпоинтами магазина.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleListProducts)
	mux.HandleFunc("GET /p/{slug}", s.handleProductPage)

	mux.HandleFunc("GET /cart", s.handleCartView)
	mux.HandleFunc("POST /cart/add", s.handleCartAdd)
	mux.HandleFunc("POST /cart/remove", s.handleCartRemove)

	mux.HandleFunc("POST /coupon/apply", s.handleCouponApply)
	mux.HandleFunc("POST /coupon/remove", s.handleCouponRemove)

	mux.HandleFunc("POST /checkout", s.handleCheckout)
	mux.HandleFunc("GET /orders", s.handleListOrders)
	mux.HandleFunc("GET /orders/{id}", s.handleGetOrder)

	mux.HandleFunc("GET /invite/{token}", s.handleInvite)
	mux.HandleFunc("POST /products/{slug}/heart", s.handleHeart)

	mux.HandleFunc("POST /pay/stripe/create", s.handlePayCreate(domain.PaymentProviderStripe))
	mux.HandleFunc("POST /pay/paypal/create", s.handlePayCreate(domain.PaymentProviderPayPal))
	mux.HandleFunc("POST /pay/paypal/capture/{orderID}", s.handlePayCapture(domain.PaymentProviderPayPal))
	mux.HandleFunc("POST /pay/coinbase/create", s.handlePayCreate(domain.PaymentProviderCoinbase))

	return s.withSession(mux)
}

// withSession привязывает запрос к серверной сессии через cookie.
// Отсутствующая или неизвестная сессия заменяется свежей.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(SessionCookie); err == nil {
			id = c.Value
		}
		sess := s.sessions.GetOrCreate(id)
		if sess.ID() != id {
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		// NOTE: identity from a trusted header for development/demo purposes.
		// In production, replace with real authentication in front of the API.
		if userID := r.Header.Get("X-User-ID"); userID != "" {
			sess.Set(session.KeyUserID, userID)
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestSession достаёт сессию, положенную middleware в контекст.
func requestSession(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionContextKey).(*session.Session)
	return sess
}

// decodeForm разбирает тело формы в dst через gorilla/schema.
func (s *Server) decodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return s.decoder.Decode(dst, r.PostForm)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// writeError переводит доменные ошибки в HTTP-статусы.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case domain.IsNotFound(err):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrInviteExhausted):
		status = http.StatusGone
		message = err.Error()
	case errors.Is(err, domain.ErrUserRequired):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, domain.ErrPaymentProviderUnavailable),
		errors.Is(err, domain.ErrOrderItemsRequired),
		errors.Is(err, domain.ErrQuantityInvalid),
		errors.Is(err, domain.ErrCouponCodeRequired):
		status = http.StatusBadRequest
		message = err.Error()
	default:
		s.logger.WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
	}

	writeJSON(w, status, errorResponse{OK: false, Error: message})
}

func (s *Server) writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{OK: false, Error: message})
}
