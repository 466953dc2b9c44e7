// Package cart holds the client-side cart snapshot. Every mutation is
// server-authoritative: the store calls the cart service and replaces the
// whole line collection with whatever comes back, so local state never
// diverges from the server at the cost of one round trip per action.
package cart

import (
	"context"
	"sync"

	"github.com/revoire/storefront/internal/api"
	pkgerrors "github.com/revoire/storefront/pkg/errors"
	"github.com/revoire/storefront/pkg/models"
	"github.com/shopspring/decimal"
)

// Client is the slice of the cart service the store depends on.
type Client interface {
	Fetch(ctx context.Context) ([]models.CartLine, error)
	AddItem(ctx context.Context, productID string, qty int) ([]models.CartLine, error)
	Increase(ctx context.Context, productID string) ([]models.CartLine, error)
	Decrease(ctx context.Context, productID string) ([]models.CartLine, error)
	Remove(ctx context.Context, productID string) ([]models.CartLine, error)
	Clear(ctx context.Context) ([]models.CartLine, error)
}

var _ Client = (*api.CartClient)(nil)

// Totals are the cart's derived monetary aggregates, computed on read.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// StoreParams groups dependencies for the cart store.
type StoreParams struct {
	Client                Client
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

// Store owns the local cart snapshot. Safe for concurrent use.
type Store struct {
	client    Client
	threshold decimal.Decimal
	fee       decimal.Decimal

	mu      sync.Mutex
	lines   []models.CartLine
	issued  uint64
	applied uint64
}

// NewStore builds a cart store with the required dependencies.
func NewStore(params StoreParams) (*Store, error) {
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart client is required")
	}
	return &Store{
		client:    params.Client,
		threshold: params.FreeShippingThreshold,
		fee:       params.ShippingFee,
	}, nil
}

// Fetch replaces the snapshot with the server's current cart.
func (s *Store) Fetch(ctx context.Context) error {
	return s.mutate(func() ([]models.CartLine, error) {
		return s.client.Fetch(ctx)
	})
}

// Add puts qty units of a product into the cart.
func (s *Store) Add(ctx context.Context, productID string, qty int) error {
	if qty < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	return s.mutate(func() ([]models.CartLine, error) {
		return s.client.AddItem(ctx, productID, qty)
	})
}

// Increase bumps a line's quantity by one.
func (s *Store) Increase(ctx context.Context, productID string) error {
	return s.mutate(func() ([]models.CartLine, error) {
		return s.client.Increase(ctx, productID)
	})
}

// Decrease lowers a line's quantity by one. At quantity 1 the server drops
// the line; the store trusts the returned collection and never special-cases
// the floor locally.
func (s *Store) Decrease(ctx context.Context, productID string) error {
	return s.mutate(func() ([]models.CartLine, error) {
		return s.client.Decrease(ctx, productID)
	})
}

// Remove deletes a line outright.
func (s *Store) Remove(ctx context.Context, productID string) error {
	return s.mutate(func() ([]models.CartLine, error) {
		return s.client.Remove(ctx, productID)
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(func() ([]models.CartLine, error) {
		return s.client.Clear(ctx)
	})
}

// Lines returns a copy of the current snapshot.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Totals computes subtotal, shipping and total from the current snapshot.
// Shipping is a step function: free above the threshold, flat fee otherwise.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := decimal.Zero
	for _, line := range s.lines {
		subtotal = subtotal.Add(line.Price.Times(line.Quantity))
	}

	shipping := decimal.Zero
	if !subtotal.IsZero() && subtotal.LessThanOrEqual(s.threshold) {
		shipping = s.fee
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}

// mutate runs one server round trip and swaps in the returned collection.
// Tickets are issued per call and a response older than the last applied one
// is discarded, so two racing mutations cannot resurrect a stale snapshot.
func (s *Store) mutate(call func() ([]models.CartLine, error)) error {
	ticket := s.nextTicket()

	lines, err := call()
	if err != nil {
		// Snapshot stays untouched; the caller surfaces the error.
		return err
	}

	s.apply(ticket, lines)
	return nil
}

func (s *Store) nextTicket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

func (s *Store) apply(ticket uint64, lines []models.CartLine) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket < s.applied {
		return false
	}
	s.applied = ticket
	s.lines = lines
	return true
}
