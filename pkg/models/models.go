package models

import (
	"time"

	"github.com/revoire/storefront/pkg/types"
)

// CartLine is one product entry in the cart. Owned by the cart store;
// quantity never drops below 1 — the server removes the line instead.
type CartLine struct {
	ProductID string      `json:"productId"`
	Title     string      `json:"title"`
	Category  string      `json:"category"`
	Images    []string    `json:"images"`
	Price     types.Money `json:"price"`
	Quantity  int         `json:"quantity"`
	Stock     int         `json:"stock"`
}

// WishlistLine is one product entry in the wishlist. Selected is local UI
// state only; the server has no concept of selection and every refetch
// resets it to false.
type WishlistLine struct {
	ProductID     string       `json:"productId"`
	Title         string       `json:"title"`
	Category      string       `json:"category"`
	Images        []string     `json:"images"`
	Price         types.Money  `json:"price"`
	OriginalPrice *types.Money `json:"originalPrice,omitempty"`
	Stock         int          `json:"stock"`
	Selected      bool         `json:"-"`
}

// InStock reports whether the line can participate in bulk selection.
func (w WishlistLine) InStock() bool {
	return w.Stock > 0
}

// Product is a catalog entry as listed by the products service.
type Product struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category"`
	Images      []string    `json:"images"`
	Price       types.Money `json:"price"`
	Stock       int         `json:"stock"`
}

// OrderStatus is the server-driven lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanCancel reports whether a client-initiated cancellation is still valid.
func (s OrderStatus) CanCancel() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// CanEditAddress reports whether the shipping address may still change.
func (s OrderStatus) CanEditAddress() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// ValidTransition reports whether from→to is allowed by the order lifecycle:
// PENDING → CONFIRMED → SHIPPED → DELIVERED, with PENDING|CONFIRMED → CANCELLED.
func ValidTransition(from, to OrderStatus) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusConfirmed || to == OrderStatusCancelled
	case OrderStatusConfirmed:
		return to == OrderStatusShipped || to == OrderStatusCancelled
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	default:
		return false
	}
}

// OrderLine is a product entry frozen into an order at checkout.
type OrderLine struct {
	ProductID string      `json:"productId"`
	Title     string      `json:"title"`
	Price     types.Money `json:"price"`
	Quantity  int         `json:"quantity"`
}

// OrderRecord is an order as returned by the order service.
type OrderRecord struct {
	ID              string                `json:"_id"`
	Status          OrderStatus           `json:"status"`
	Items           []OrderLine           `json:"items"`
	TotalPrice      types.Money           `json:"totalPrice"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// OrderStats is the derived per-status tally over the full order collection.
type OrderStats struct {
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Shipped   int `json:"shipped"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

// SellerMetrics is the dashboard summary for a seller account.
type SellerMetrics struct {
	TotalRevenue  types.Money `json:"totalRevenue"`
	TotalOrders   int         `json:"totalOrders"`
	TotalProducts int         `json:"totalProducts"`
	PendingOrders int         `json:"pendingOrders"`
	LowStockCount int         `json:"lowStockCount"`
}
