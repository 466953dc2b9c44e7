package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/revoire/storefront/pkg/models"
	"github.com/revoire/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

// state is the single-tenant in-memory backing store. Auth is out of scope
// for the mock, so one cart, one wishlist and one order list exist.
type state struct {
	mu sync.Mutex

	products     map[string]models.Product
	productOrder []string
	cart         []models.CartLine
	wishlist     []models.WishlistLine
	orders       []models.OrderRecord

	freeShippingThreshold decimal.Decimal
	shippingFee           decimal.Decimal
	now                   func() time.Time
}

func newState(freeShippingThreshold, shippingFee decimal.Decimal) *state {
	return &state{
		products:              make(map[string]models.Product),
		freeShippingThreshold: freeShippingThreshold,
		shippingFee:           shippingFee,
		now:                   time.Now,
	}
}

func (s *state) seedProducts(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, product := range products {
		if product.ID == "" {
			product.ID = uuid.NewString()
		}
		if _, exists := s.products[product.ID]; !exists {
			s.productOrder = append(s.productOrder, product.ID)
		}
		s.products[product.ID] = product
	}
}

func (s *state) listProducts(search, category string, minPrice, maxPrice *decimal.Decimal, skip, limit int) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]models.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		product := s.products[id]
		if search != "" && !strings.Contains(strings.ToLower(product.Title), strings.ToLower(search)) {
			continue
		}
		if category != "" && !strings.EqualFold(product.Category, category) {
			continue
		}
		if minPrice != nil && product.Price.Amount.LessThan(*minPrice) {
			continue
		}
		if maxPrice != nil && product.Price.Amount.GreaterThan(*maxPrice) {
			continue
		}
		matched = append(matched, product)
	}

	if skip >= len(matched) {
		return []models.Product{}
	}
	matched = matched[skip:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched
}

func (s *state) getProduct(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	return product, ok
}

func (s *state) createProduct(product models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = uuid.NewString()
	s.products[product.ID] = product
	s.productOrder = append(s.productOrder, product.ID)
	return product
}

func (s *state) updateProduct(id string, update models.Product) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[id]
	if !ok {
		return models.Product{}, false
	}
	update.ID = existing.ID
	s.products[id] = update
	return update, true
}

func (s *state) deleteProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return false
	}
	delete(s.products, id)
	kept := s.productOrder[:0]
	for _, pid := range s.productOrder {
		if pid != id {
			kept = append(kept, pid)
		}
	}
	s.productOrder = kept
	return true
}

func (s *state) cartLines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyCartLocked()
}

func (s *state) addCartLine(productID string, qty int) ([]models.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return nil, false
	}
	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			s.cart[i].Quantity += qty
			return s.copyCartLocked(), true
		}
	}
	s.cart = append(s.cart, models.CartLine{
		ProductID: product.ID,
		Title:     product.Title,
		Category:  product.Category,
		Images:    product.Images,
		Price:     product.Price,
		Quantity:  qty,
		Stock:     product.Stock,
	})
	return s.copyCartLocked(), true
}

func (s *state) adjustCartLine(productID string, delta int) ([]models.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ProductID != productID {
			continue
		}
		s.cart[i].Quantity += delta
		if s.cart[i].Quantity < 1 {
			// The quantity floor: dropping below one removes the line.
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
		}
		return s.copyCartLocked(), true
	}
	return nil, false
}

func (s *state) removeCartLine(productID string) ([]models.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return s.copyCartLocked(), true
		}
	}
	return nil, false
}

func (s *state) clearCart() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	return s.copyCartLocked()
}

func (s *state) wishlistLines() []models.WishlistLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyWishlistLocked()
}

func (s *state) toggleWishlist(productID string) ([]models.WishlistLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.wishlist {
		if s.wishlist[i].ProductID == productID {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			return s.copyWishlistLocked(), true
		}
	}

	product, ok := s.products[productID]
	if !ok {
		return nil, false
	}
	s.wishlist = append(s.wishlist, models.WishlistLine{
		ProductID: product.ID,
		Title:     product.Title,
		Category:  product.Category,
		Images:    product.Images,
		Price:     product.Price,
		Stock:     product.Stock,
	})
	return s.copyWishlistLocked(), true
}

func (s *state) createOrder(address types.ShippingAddress) (models.OrderRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return models.OrderRecord{}, false
	}

	subtotal := decimal.Zero
	currency := types.CurrencyUSD
	items := make([]models.OrderLine, 0, len(s.cart))
	for _, line := range s.cart {
		subtotal = subtotal.Add(line.Price.Times(line.Quantity))
		currency = line.Price.Currency
		items = append(items, models.OrderLine{
			ProductID: line.ProductID,
			Title:     line.Title,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	total := subtotal
	if subtotal.LessThanOrEqual(s.freeShippingThreshold) {
		total = total.Add(s.shippingFee)
	}

	order := models.OrderRecord{
		ID:              uuid.NewString(),
		Status:          models.OrderStatusPending,
		Items:           items,
		TotalPrice:      types.Money{Amount: total, Currency: currency},
		ShippingAddress: address,
		CreatedAt:       s.now(),
	}
	s.orders = append(s.orders, order)
	s.cart = nil
	return order, true
}

func (s *state) listOrders() []models.OrderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.OrderRecord, len(s.orders))
	copy(out, s.orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *state) getOrder(id string) (models.OrderRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id {
			return order, true
		}
	}
	return models.OrderRecord{}, false
}

func (s *state) updateOrder(id string, apply func(*models.OrderRecord)) (models.OrderRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			apply(&s.orders[i])
			return s.orders[i], true
		}
	}
	return models.OrderRecord{}, false
}

func (s *state) sellerMetrics() models.SellerMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	const lowStockFloor = 5

	metrics := models.SellerMetrics{
		TotalProducts: len(s.products),
		TotalOrders:   len(s.orders),
		TotalRevenue:  types.Money{Amount: decimal.Zero, Currency: types.CurrencyUSD},
	}
	for _, product := range s.products {
		if product.Stock < lowStockFloor {
			metrics.LowStockCount++
		}
	}
	for _, order := range s.orders {
		if order.Status == models.OrderStatusPending {
			metrics.PendingOrders++
		}
		if order.Status != models.OrderStatusCancelled {
			metrics.TotalRevenue.Amount = metrics.TotalRevenue.Amount.Add(order.TotalPrice.Amount)
		}
	}
	return metrics
}

func (s *state) copyCartLocked() []models.CartLine {
	out := make([]models.CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}

func (s *state) copyWishlistLocked() []models.WishlistLine {
	out := make([]models.WishlistLine, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}
