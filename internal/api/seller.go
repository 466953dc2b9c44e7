package api

import (
	"context"
	"net/http"

	"github.com/revoire/storefront/pkg/models"
)

// SellerClient talks to the seller dashboard service.
type SellerClient struct {
	*client
}

// NewSellerClient builds a client for the seller dashboard service.
func NewSellerClient(params Params) (*SellerClient, error) {
	if params.Service == "" {
		params.Service = "seller"
	}
	base, err := newClient(params)
	if err != nil {
		return nil, err
	}
	return &SellerClient{client: base}, nil
}

// Metrics returns the seller's dashboard summary.
func (c *SellerClient) Metrics(ctx context.Context) (models.SellerMetrics, error) {
	var out models.SellerMetrics
	if err := c.do(ctx, "metrics", http.MethodGet, "/metrics", nil, nil, &out); err != nil {
		return models.SellerMetrics{}, err
	}
	return out, nil
}

// Products returns every product owned by the seller.
func (c *SellerClient) Products(ctx context.Context) ([]models.Product, error) {
	var envelope productsEnvelope
	if err := c.do(ctx, "products", http.MethodGet, "/products", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Products, nil
}

// Orders returns every order containing the seller's products.
func (c *SellerClient) Orders(ctx context.Context) ([]models.OrderRecord, error) {
	var envelope ordersEnvelope
	if err := c.do(ctx, "orders", http.MethodGet, "/orders", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Orders, nil
}
