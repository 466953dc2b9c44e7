package mockapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/revoire/storefront/pkg/errors"
	"github.com/revoire/storefront/pkg/models"
	"github.com/revoire/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

type cartPayload struct {
	Cart struct {
		Items []models.CartLine `json:"items"`
	} `json:"cart"`
}

func cartResponse(items []models.CartLine) cartPayload {
	var payload cartPayload
	payload.Cart.Items = items
	return payload
}

type wishlistPayload struct {
	Wishlist struct {
		Items []models.WishlistLine `json:"items"`
	} `json:"wishlist"`
}

func wishlistResponse(items []models.WishlistLine) wishlistPayload {
	var payload wishlistPayload
	payload.Wishlist.Items = items
	return payload
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cartResponse(s.state.cartLines()))
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
		Qty       int    `json:"qty"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Qty < 1 {
		body.Qty = 1
	}
	items, ok := s.state.addCartLine(body.ProductID, body.Qty)
	if !ok {
		writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(items))
}

func (s *Server) handleIncrease(w http.ResponseWriter, r *http.Request) {
	items, ok := s.state.adjustCartLine(chi.URLParam(r, "productID"), 1)
	if !ok {
		writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found"))
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(items))
}

func (s *Server) handleDecrease(w http.ResponseWriter, r *http.Request) {
	items, ok := s.state.adjustCartLine(chi.URLParam(r, "productID"), -1)
	if !ok {
		writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found"))
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(items))
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	items, ok := s.state.removeCartLine(chi.URLParam(r, "productID"))
	if !ok {
		writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found"))
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(items))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cartResponse(s.state.clearCart()))
}

func (s *Server) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, wishlistResponse(s.state.wishlistLines()))
}

func (s *Server) handleToggleWishlist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	items, ok := s.state.toggleWishlist(body.ProductID)
	if !ok {
		writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
		return
	}
	writeJSON(w, http.StatusOK, wishlistResponse(items))
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var minPrice, maxPrice *decimal.Decimal
	if raw := query.Get("minPrice"); raw != "" {
		if parsed, err := decimal.NewFromString(raw); err == nil {
			minPrice = &parsed
		}
	}
	if raw := query.Get("maxPrice"); raw != "" {
		if parsed, err := decimal.NewFromString(raw); err == nil {
			maxPrice = &parsed
		}
	}
	skip, _ := strconv.Atoi(query.Get("skip"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	products := s.state.listProducts(query.Get("q"), query.Get("category"), minPrice, maxPrice, skip, limit)
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := s.state.getProduct(chi.URLParam(r, "productID"))
	if !ok {
		writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var body models.Product
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(body.Title) == "" {
		writeError(w, pkgerrors.New(pkgerrors.CodeValidation, "title is required"))
		return
	}
	product := s.state.createProduct(body)
	writeJSON(w, http.StatusCreated, map[string]any{"product": product})
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var body models.Product
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	product, ok := s.state.updateProduct(chi.URLParam(r, "productID"), body)
	if !ok {
		writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !s.state.deleteProduct(chi.URLParam(r, "productID")) {
		writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	address := defaultShippingAddress
	if r.ContentLength > 0 {
		var body struct {
			ShippingAddress *types.ShippingAddress `json:"shippingAddress"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, err)
			return
		}
		if body.ShippingAddress != nil {
			address = *body.ShippingAddress
		}
	}

	order, ok := s.state.createOrder(address)
	if !ok {
		writeError(w, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"order": order})
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"orders": s.state.listOrders()})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := s.state.getOrder(chi.URLParam(r, "orderID"))
	if !ok {
		writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	existing, ok := s.state.getOrder(orderID)
	if !ok {
		writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
		return
	}
	if !existing.Status.CanCancel() {
		writeError(w, pkgerrors.New(pkgerrors.CodeStateConflict,
			"order can only be cancelled while pending or confirmed"))
		return
	}

	order, _ := s.state.updateOrder(orderID, func(order *models.OrderRecord) {
		order.Status = models.OrderStatusCancelled
	})
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (s *Server) handleUpdateOrderAddress(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ShippingAddress types.ShippingAddress `json:"shippingAddress"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	orderID := chi.URLParam(r, "orderID")
	existing, ok := s.state.getOrder(orderID)
	if !ok {
		writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
		return
	}
	if !existing.Status.CanEditAddress() {
		writeError(w, pkgerrors.New(pkgerrors.CodeStateConflict,
			"address can only change while the order is pending or confirmed"))
		return
	}

	order, _ := s.state.updateOrder(orderID, func(order *models.OrderRecord) {
		order.ShippingAddress = body.ShippingAddress
	})
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (s *Server) handleSellerMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state.sellerMetrics())
}

func (s *Server) handleSellerProducts(w http.ResponseWriter, r *http.Request) {
	products := s.state.listProducts("", "", nil, nil, 0, 0)
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) handleSellerOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"orders": s.state.listOrders()})
}
