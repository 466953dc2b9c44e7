package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/revoire/storefront/pkg/models"
	"github.com/revoire/storefront/pkg/types"
)

type orderEnvelope struct {
	Order models.OrderRecord `json:"order"`
}

type ordersEnvelope struct {
	Orders []models.OrderRecord `json:"orders"`
}

// OrdersClient talks to the order service.
type OrdersClient struct {
	*client
}

// NewOrdersClient builds a client for the order service.
func NewOrdersClient(params Params) (*OrdersClient, error) {
	if params.Service == "" {
		params.Service = "orders"
	}
	base, err := newClient(params)
	if err != nil {
		return nil, err
	}
	return &OrdersClient{client: base}, nil
}

// Create places an order from the caller's current cart. ID assignment and
// tax/shipping math happen server-side.
func (c *OrdersClient) Create(ctx context.Context) (models.OrderRecord, error) {
	var envelope orderEnvelope
	if err := c.do(ctx, "create", http.MethodPost, "/", nil, nil, &envelope); err != nil {
		return models.OrderRecord{}, err
	}
	return envelope.Order, nil
}

// ListMine returns all orders for the authenticated user.
func (c *OrdersClient) ListMine(ctx context.Context) ([]models.OrderRecord, error) {
	var envelope ordersEnvelope
	if err := c.do(ctx, "list_mine", http.MethodGet, "/me", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Orders, nil
}

// Get returns a single order by ID.
func (c *OrdersClient) Get(ctx context.Context, orderID string) (models.OrderRecord, error) {
	var envelope orderEnvelope
	if err := c.do(ctx, "get", http.MethodGet, "/"+url.PathEscape(orderID), nil, nil, &envelope); err != nil {
		return models.OrderRecord{}, err
	}
	return envelope.Order, nil
}

// Cancel asks the server to cancel the order. The server enforces the
// status rules and answers 422 for terminal orders.
func (c *OrdersClient) Cancel(ctx context.Context, orderID string) (models.OrderRecord, error) {
	var envelope orderEnvelope
	path := "/" + url.PathEscape(orderID) + "/cancel"
	if err := c.do(ctx, "cancel", http.MethodPost, path, nil, nil, &envelope); err != nil {
		return models.OrderRecord{}, err
	}
	return envelope.Order, nil
}

// UpdateAddress replaces the order's shipping address.
func (c *OrdersClient) UpdateAddress(ctx context.Context, orderID string, address types.ShippingAddress) (models.OrderRecord, error) {
	body := map[string]any{"shippingAddress": address}
	var envelope orderEnvelope
	path := "/" + url.PathEscape(orderID) + "/address"
	if err := c.do(ctx, "update_address", http.MethodPost, path, nil, body, &envelope); err != nil {
		return models.OrderRecord{}, err
	}
	return envelope.Order, nil
}
