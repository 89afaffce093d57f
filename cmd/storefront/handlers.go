package main

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/helmcraft/storefront/core/cart"
	"github.com/helmcraft/storefront/core/catalog"
	"github.com/helmcraft/storefront/core/checkout"
	"github.com/helmcraft/storefront/core/logger"
	"github.com/helmcraft/storefront/core/notify"
	"github.com/helmcraft/storefront/core/session"
	"github.com/helmcraft/storefront/pkg/money"
)

// handlers exposes the storefront client layer as a JSON API for the
// frontend.
type handlers struct {
	cfg      Config
	log      *slog.Logger
	session  *session.Store
	cart     *cart.Store
	orders   *checkout.Service
	catalog  *catalog.Client
	bus      *notify.Bus
	readyzFn func(ctx context.Context) error
}

func (h *handlers) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log.With(logger.Component("http.request"))))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	r.Get("/readyz", h.ready)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/register", h.register)
		r.Post("/logout", h.logout)
		r.Get("/me", h.me)
		r.Post("/forgot-password", h.forgotPassword)
		r.Post("/reset-password", h.resetPassword)
		r.Patch("/profile", h.updateProfile)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.getCart)
		r.Delete("/", h.clearCart)
		r.Post("/items", h.addToCart)
		r.Put("/items/{itemID}", h.updateQuantity)
		r.Delete("/items/{itemID}", h.removeItem)
	})

	r.Get("/products", h.listProducts)
	r.Get("/products/{slug}", h.getProduct)
	r.Get("/blog", h.listPosts)

	r.Get("/checkout/summary", h.checkoutSummary)
	r.Get("/payment/config", h.paymentConfig)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/", h.placeOrder)
		r.Post("/verify-payment", h.verifyPayment)
		r.Get("/{orderID}", h.getOrder)
		r.Put("/{orderID}/cancel", h.cancelOrder)
	})

	r.Get("/notifications", h.notifications)

	return r
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) ready(w http.ResponseWriter, r *http.Request) {
	if err := h.readyzFn(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var req session.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.session.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	if err := h.session.CheckAuth(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	user, ok := h.session.User()
	if !ok {
		writeError(w, session.ErrNotAuthenticated)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *handlers) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}

	if err := h.session.ForgotPassword(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset email sent"})
}

func (h *handlers) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	if err := h.session.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

func (h *handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	var patch session.UserPatch
	if !decode(w, r, &patch) {
		return
	}

	if !h.session.IsAuthenticated() {
		writeError(w, session.ErrNotAuthenticated)
		return
	}

	h.session.UpdateUser(patch)
	user, _ := h.session.User()
	writeJSON(w, http.StatusOK, user)
}

func (h *handlers) getCart(w http.ResponseWriter, r *http.Request) {
	h.cart.EnsureFetched(r.Context(), r.URL.Path)

	c, _ := h.cart.Cart()
	writeJSON(w, http.StatusOK, map[string]any{
		"cart":       c,
		"totalItems": h.cart.TotalItems(),
		"totalPrice": h.cart.TotalPrice(),
	})
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Quantity  int    `json:"quantity"`
}

func (h *handlers) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.cart.AddToCart(r.Context(), req.ProductID, req.VariantID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	c, _ := h.cart.Cart()
	writeJSON(w, http.StatusOK, c)
}

func (h *handlers) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decode(w, r, &req) {
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), chi.URLParam(r, "itemID"), req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	c, _ := h.cart.Cart()
	writeJSON(w, http.StatusOK, c)
}

func (h *handlers) removeItem(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.RemoveItem(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		writeError(w, err)
		return
	}
	c, _ := h.cart.Cart()
	writeJSON(w, http.StatusOK, c)
}

func (h *handlers) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.ClearCart(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	c, _ := h.cart.Cart()
	writeJSON(w, http.StatusOK, c)
}

func (h *handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.catalog.Products(r.Context(), catalog.ProductQuery{
		Page:     page,
		Limit:    limit,
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Product(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handlers) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.catalog.Posts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *handlers) checkoutSummary(w http.ResponseWriter, r *http.Request) {
	discount, _ := strconv.ParseFloat(r.URL.Query().Get("discount"), 64)
	summary := checkout.Summarize(h.cfg.Checkout, h.cart.TotalPrice(), discount)
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": summary,
		"display": map[string]string{
			"subtotal": money.Format(summary.Subtotal, money.DefaultCurrency),
			"shipping": money.Format(summary.Shipping, money.DefaultCurrency),
			"tax":      money.Format(summary.Tax, money.DefaultCurrency),
			"discount": money.Format(summary.Discount, money.DefaultCurrency),
			"total":    money.Format(summary.Total, money.DefaultCurrency),
		},
	})
}

// paymentConfig hands the frontend what it needs to open the gateway's
// checkout widget.
func (h *handlers) paymentConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"keyId":     h.cfg.Payment.KeyID,
		"scriptUrl": h.cfg.Payment.ScriptURL,
	})
}

func (h *handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.Orders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *handlers) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req checkout.PlaceOrderRequest
	if !decode(w, r, &req) {
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

type verifyPaymentRequest struct {
	GatewayOrderID string `json:"razorpayOrderId"`
	PaymentID      string `json:"razorpayPaymentId"`
	Signature      string `json:"razorpaySignature"`
}

func (h *handlers) verifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if !decode(w, r, &req) {
		return
	}

	order, err := h.orders.VerifyPayment(r.Context(), req.GatewayOrderID, req.PaymentID, req.Signature)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *handlers) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Order(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *handlers) cancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.CancelOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// notifications drains pending notifications without blocking. The frontend
// polls this endpoint and renders the result as toasts.
func (h *handlers) notifications(w http.ResponseWriter, _ *http.Request) {
	pending := []notify.Notification{}
	for {
		select {
		case n, ok := <-h.bus.Notifications():
			if !ok {
				writeJSON(w, http.StatusOK, pending)
				return
			}
			pending = append(pending, n)
		default:
			writeJSON(w, http.StatusOK, pending)
			return
		}
	}
}

// requestLogger logs each request with its status and duration.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info("request",
				slog.String("method", r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
