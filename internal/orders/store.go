// Package orders mirrors the user's order collection. Status transitions
// are server-driven; the store only reflects them, except for the guarded
// client-initiated cancel and address edit.
package orders

import (
	"context"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/revoire/storefront/internal/api"
	pkgerrors "github.com/revoire/storefront/pkg/errors"
	"github.com/revoire/storefront/pkg/models"
	"github.com/revoire/storefront/pkg/types"
)

// Client is the slice of the order service the store depends on.
type Client interface {
	Create(ctx context.Context) (models.OrderRecord, error)
	ListMine(ctx context.Context) ([]models.OrderRecord, error)
	Get(ctx context.Context, orderID string) (models.OrderRecord, error)
	Cancel(ctx context.Context, orderID string) (models.OrderRecord, error)
	UpdateAddress(ctx context.Context, orderID string, address types.ShippingAddress) (models.OrderRecord, error)
}

var _ Client = (*api.OrdersClient)(nil)

// StoreParams groups dependencies for the order store.
type StoreParams struct {
	Client Client
}

// Store owns the local order collection. Safe for concurrent use.
type Store struct {
	client   Client
	validate *validator.Validate

	mu      sync.Mutex
	orders  []models.OrderRecord
	current *models.OrderRecord
	issued  uint64
	applied uint64
}

// NewStore builds an order store with the required dependencies.
func NewStore(params StoreParams) (*Store, error) {
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders client is required")
	}
	return &Store{
		client:   params.Client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// Fetch replaces the collection with the server's current order list.
func (s *Store) Fetch(ctx context.Context) error {
	ticket := s.nextTicket()
	orders, err := s.client.ListMine(ctx)
	if err != nil {
		return err
	}
	s.applyList(ticket, orders)
	return nil
}

// FetchByID loads a single order and tracks it as the current one.
func (s *Store) FetchByID(ctx context.Context, orderID string) (models.OrderRecord, error) {
	order, err := s.client.Get(ctx, orderID)
	if err != nil {
		return models.OrderRecord{}, err
	}

	s.mu.Lock()
	s.current = &order
	s.mu.Unlock()
	return order, nil
}

// Create places an order from the current cart, then refetches the full
// list so the collection reflects server truth (ID assignment, totals)
// instead of a local append.
func (s *Store) Create(ctx context.Context) (models.OrderRecord, error) {
	order, err := s.client.Create(ctx)
	if err != nil {
		return models.OrderRecord{}, err
	}

	s.mu.Lock()
	s.current = &order
	s.mu.Unlock()

	if err := s.Fetch(ctx); err != nil {
		return order, err
	}
	return order, nil
}

// Cancel cancels an order. The precondition is checked locally first so a
// cancel of a terminal order fails before any request is sent; the server
// remains the enforcement point for races the client cannot see.
func (s *Store) Cancel(ctx context.Context, orderID string) (models.OrderRecord, error) {
	if known, ok := s.find(orderID); ok && !known.Status.CanCancel() {
		return models.OrderRecord{}, pkgerrors.New(pkgerrors.CodeStateConflict,
			"order can only be cancelled while pending or confirmed")
	}

	order, err := s.client.Cancel(ctx, orderID)
	if err != nil {
		return models.OrderRecord{}, err
	}
	s.patch(order)
	return order, nil
}

// UpdateAddress replaces an order's shipping address, subject to the same
// status window as cancellation.
func (s *Store) UpdateAddress(ctx context.Context, orderID string, address types.ShippingAddress) (models.OrderRecord, error) {
	if err := s.validate.Struct(address); err != nil {
		return models.OrderRecord{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping address")
	}
	if known, ok := s.find(orderID); ok && !known.Status.CanEditAddress() {
		return models.OrderRecord{}, pkgerrors.New(pkgerrors.CodeStateConflict,
			"address can only change while the order is pending or confirmed")
	}

	order, err := s.client.UpdateAddress(ctx, orderID, address)
	if err != nil {
		return models.OrderRecord{}, err
	}
	s.patch(order)
	return order, nil
}

// Orders returns a copy of the current collection.
func (s *Store) Orders() []models.OrderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.OrderRecord, len(s.orders))
	copy(out, s.orders)
	return out
}

// Current returns the tracked order, if any.
func (s *Store) Current() (models.OrderRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.OrderRecord{}, false
	}
	return *s.current, true
}

// ClearCurrent drops the tracked order.
func (s *Store) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Stats tallies the collection by status. Always recomputed by full
// iteration, never patched incrementally.
func (s *Store) Stats() models.OrderStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.OrderStats{Total: len(s.orders)}
	for _, order := range s.orders {
		switch order.Status {
		case models.OrderStatusPending:
			stats.Pending++
		case models.OrderStatusConfirmed:
			stats.Confirmed++
		case models.OrderStatusShipped:
			stats.Shipped++
		case models.OrderStatusDelivered:
			stats.Delivered++
		case models.OrderStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

// OrdersByStatus returns the orders currently in the given status.
func (s *Store) OrdersByStatus(status models.OrderStatus) []models.OrderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.OrderRecord, 0)
	for _, order := range s.orders {
		if order.Status == status {
			out = append(out, order)
		}
	}
	return out
}

// RecentOrders returns up to limit orders, newest first.
func (s *Store) RecentOrders(limit int) []models.OrderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.OrderRecord, len(s.orders))
	copy(out, s.orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// Reset clears the whole store.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = nil
	s.current = nil
}

func (s *Store) find(orderID string) (models.OrderRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == orderID {
			return order, true
		}
	}
	return models.OrderRecord{}, false
}

// patch swaps one server-confirmed record into the collection in place and
// keeps the tracked order in sync. Never applied optimistically.
func (s *Store) patch(order models.OrderRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == order.ID {
			s.orders[i] = order
			break
		}
	}
	if s.current != nil && s.current.ID == order.ID {
		s.current = &order
	}
}

func (s *Store) nextTicket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

func (s *Store) applyList(ticket uint64, orders []models.OrderRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket < s.applied {
		return
	}
	s.applied = ticket
	s.orders = orders
}
