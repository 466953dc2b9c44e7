// Package seller mirrors the seller dashboard: metrics plus the seller's
// own product and order lists.
package seller

import (
	"context"
	"sync"

	"github.com/revoire/storefront/internal/api"
	pkgerrors "github.com/revoire/storefront/pkg/errors"
	"github.com/revoire/storefront/pkg/models"
)

// Client is the slice of the seller dashboard service the store depends on.
type Client interface {
	Metrics(ctx context.Context) (models.SellerMetrics, error)
	Products(ctx context.Context) ([]models.Product, error)
	Orders(ctx context.Context) ([]models.OrderRecord, error)
}

var _ Client = (*api.SellerClient)(nil)

// StoreParams groups dependencies for the seller dashboard store.
type StoreParams struct {
	Client Client
}

// Store owns the dashboard snapshot. Safe for concurrent use.
type Store struct {
	client Client

	mu       sync.Mutex
	metrics  *models.SellerMetrics
	products []models.Product
	orders   []models.OrderRecord
}

// NewStore builds a seller dashboard store with the required dependencies.
func NewStore(params StoreParams) (*Store, error) {
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller client is required")
	}
	return &Store{client: params.Client}, nil
}

// FetchMetrics refreshes the dashboard summary.
func (s *Store) FetchMetrics(ctx context.Context) error {
	metrics, err := s.client.Metrics(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.metrics = &metrics
	s.mu.Unlock()
	return nil
}

// FetchProducts refreshes the seller's product list.
func (s *Store) FetchProducts(ctx context.Context) error {
	products, err := s.client.Products(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

// FetchOrders refreshes the seller's order list.
func (s *Store) FetchOrders(ctx context.Context) error {
	orders, err := s.client.Orders(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

// Metrics returns the last fetched summary, if any.
func (s *Store) Metrics() (models.SellerMetrics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metrics == nil {
		return models.SellerMetrics{}, false
	}
	return *s.metrics, true
}

// Products returns a copy of the seller's product list.
func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Orders returns a copy of the seller's order list.
func (s *Store) Orders() []models.OrderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.OrderRecord, len(s.orders))
	copy(out, s.orders)
	return out
}

// AddProductToList appends a product after an out-of-band create.
func (s *Store) AddProductToList(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, product)
}

// UpdateProductInList swaps an updated product into the list.
func (s *Store) UpdateProductInList(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == product.ID {
			s.products[i] = product
			return
		}
	}
}

// RemoveProductFromList drops a product after an out-of-band delete.
func (s *Store) RemoveProductFromList(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.products[:0]
	for _, product := range s.products {
		if product.ID != productID {
			kept = append(kept, product)
		}
	}
	s.products = kept
}
