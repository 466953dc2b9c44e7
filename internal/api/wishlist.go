package api

import (
	"context"
	"net/http"

	"github.com/revoire/storefront/pkg/models"
)

type wishlistEnvelope struct {
	Wishlist struct {
		Items []models.WishlistLine `json:"items"`
	} `json:"wishlist"`
}

// WishlistClient talks to the wishlist service.
type WishlistClient struct {
	*client
}

// NewWishlistClient builds a client for the wishlist service.
func NewWishlistClient(params Params) (*WishlistClient, error) {
	if params.Service == "" {
		params.Service = "wishlist"
	}
	base, err := newClient(params)
	if err != nil {
		return nil, err
	}
	return &WishlistClient{client: base}, nil
}

// Fetch returns the current wishlist lines.
func (c *WishlistClient) Fetch(ctx context.Context) ([]models.WishlistLine, error) {
	var envelope wishlistEnvelope
	if err := c.do(ctx, "fetch", http.MethodGet, "/", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Wishlist.Items, nil
}

// Toggle adds the product if absent and removes it if present. The server
// always answers with the full updated collection.
func (c *WishlistClient) Toggle(ctx context.Context, productID string) ([]models.WishlistLine, error) {
	body := map[string]any{"productId": productID}
	var envelope wishlistEnvelope
	if err := c.do(ctx, "toggle", http.MethodPost, "/items", nil, body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Wishlist.Items, nil
}
