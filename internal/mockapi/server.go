// Package mockapi is an in-memory stand-in for the remote storefront
// services. It serves the same routes, envelopes and error payloads, which
// makes it the backend for local development and the integration tests.
package mockapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/revoire/storefront/pkg/errors"
	"github.com/revoire/storefront/pkg/logger"
	"github.com/revoire/storefront/pkg/models"
	"github.com/revoire/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

// Options configures the mock server.
type Options struct {
	Logger                *logger.Logger
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

// Server hosts every storefront service under one router.
type Server struct {
	router chi.Router
	state  *state
	logg   *logger.Logger
}

// NewServer builds the mock services with the given checkout policy.
func NewServer(opts Options) *Server {
	threshold := opts.FreeShippingThreshold
	if threshold.IsZero() {
		threshold = decimal.NewFromInt(500)
	}
	fee := opts.ShippingFee
	if fee.IsZero() {
		fee = decimal.NewFromInt(25)
	}

	s := &Server{
		router: chi.NewRouter(),
		state:  newState(threshold, fee),
		logg:   opts.Logger,
	}
	s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SeedProducts loads catalog entries into the mock.
func (s *Server) SeedProducts(products ...models.Product) {
	s.state.seedProducts(products)
}

// SetOrderStatus force-sets an order's status, bypassing the lifecycle.
// Test hook for driving server-side transitions the client only observes.
func (s *Server) SetOrderStatus(orderID string, status models.OrderStatus) bool {
	_, ok := s.state.updateOrder(orderID, func(order *models.OrderRecord) {
		order.Status = status
	})
	return ok
}

func (s *Server) routes() {
	s.router.Use(s.logRequests)

	s.router.Route("/api/products", func(r chi.Router) {
		r.Get("/", s.handleListProducts)
		r.Post("/", s.handleCreateProduct)
		r.Get("/{productID}", s.handleGetProduct)
		r.Patch("/{productID}", s.handleUpdateProduct)
		r.Delete("/{productID}", s.handleDeleteProduct)
	})

	s.router.Route("/api/cart", func(r chi.Router) {
		r.Get("/", s.handleGetCart)
		r.Post("/items", s.handleAddCartItem)
		r.Patch("/items/{productID}/increase", s.handleIncrease)
		r.Patch("/items/{productID}/decrease", s.handleDecrease)
		r.Delete("/items/{productID}", s.handleRemoveCartItem)
		r.Delete("/clear", s.handleClearCart)
	})

	s.router.Route("/api/wishlist", func(r chi.Router) {
		r.Get("/", s.handleGetWishlist)
		r.Post("/items", s.handleToggleWishlist)
	})

	s.router.Route("/api/orders", func(r chi.Router) {
		r.Post("/", s.handleCreateOrder)
		r.Get("/me", s.handleListOrders)
		r.Get("/{orderID}", s.handleGetOrder)
		r.Post("/{orderID}/cancel", s.handleCancelOrder)
		r.Post("/{orderID}/address", s.handleUpdateOrderAddress)
	})

	s.router.Route("/api/seller/dashboard", func(r chi.Router) {
		r.Get("/metrics", s.handleSellerMetrics)
		r.Get("/products", s.handleSellerProducts)
		r.Get("/orders", s.handleSellerOrders)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.logg != nil {
			ctx := s.logg.WithFields(r.Context(), map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})
			s.logg.Debug(ctx, "handling request")
		}
		next.ServeHTTP(w, r)
	})
}

func decodeBody(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed request body")
	}
	return nil
}

var defaultShippingAddress = types.ShippingAddress{
	FullName:   "Test Buyer",
	Line1:      "1 Demo Street",
	City:       "Springfield",
	State:      "IL",
	PostalCode: "62701",
	Country:    "US",
}
