package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/revoire/storefront/pkg/models"
)

type cartEnvelope struct {
	Cart struct {
		Items []models.CartLine `json:"items"`
	} `json:"cart"`
}

// CartClient talks to the cart service. Every mutation returns the full
// updated line collection, which the cart store swaps in wholesale.
type CartClient struct {
	*client
}

// NewCartClient builds a client for the cart service.
func NewCartClient(params Params) (*CartClient, error) {
	if params.Service == "" {
		params.Service = "cart"
	}
	base, err := newClient(params)
	if err != nil {
		return nil, err
	}
	return &CartClient{client: base}, nil
}

// Fetch returns the current cart lines.
func (c *CartClient) Fetch(ctx context.Context) ([]models.CartLine, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, "fetch", http.MethodGet, "/", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart.Items, nil
}

// AddItem adds qty units of a product and returns the updated lines.
func (c *CartClient) AddItem(ctx context.Context, productID string, qty int) ([]models.CartLine, error) {
	body := map[string]any{"productId": productID, "qty": qty}
	var envelope cartEnvelope
	if err := c.do(ctx, "add_item", http.MethodPost, "/items", nil, body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart.Items, nil
}

// Increase bumps a line's quantity by one.
func (c *CartClient) Increase(ctx context.Context, productID string) ([]models.CartLine, error) {
	var envelope cartEnvelope
	path := "/items/" + url.PathEscape(productID) + "/increase"
	if err := c.do(ctx, "increase", http.MethodPatch, path, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart.Items, nil
}

// Decrease lowers a line's quantity by one; at quantity 1 the server drops
// the line from the returned collection.
func (c *CartClient) Decrease(ctx context.Context, productID string) ([]models.CartLine, error) {
	var envelope cartEnvelope
	path := "/items/" + url.PathEscape(productID) + "/decrease"
	if err := c.do(ctx, "decrease", http.MethodPatch, path, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart.Items, nil
}

// Remove deletes a line outright.
func (c *CartClient) Remove(ctx context.Context, productID string) ([]models.CartLine, error) {
	var envelope cartEnvelope
	path := "/items/" + url.PathEscape(productID)
	if err := c.do(ctx, "remove", http.MethodDelete, path, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart.Items, nil
}

// Clear empties the cart.
func (c *CartClient) Clear(ctx context.Context) ([]models.CartLine, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, "clear", http.MethodDelete, "/clear", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart.Items, nil
}
