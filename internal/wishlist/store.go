// Package wishlist holds the client-side wishlist snapshot plus the bulk
// selection engine. Selection is purely local UI state: the server never
// sees it, and any server round trip resets every selected flag.
package wishlist

import (
	"context"
	"sync"

	"github.com/revoire/storefront/internal/api"
	pkgerrors "github.com/revoire/storefront/pkg/errors"
	"github.com/revoire/storefront/pkg/models"
	"github.com/shopspring/decimal"
)

// Client is the slice of the wishlist service the store depends on.
type Client interface {
	Fetch(ctx context.Context) ([]models.WishlistLine, error)
	Toggle(ctx context.Context, productID string) ([]models.WishlistLine, error)
}

var _ Client = (*api.WishlistClient)(nil)

// Aggregates are the derived selection values, recomputed on read so they
// can never drift from the line collection.
type Aggregates struct {
	SelectedCount int
	SelectedTotal decimal.Decimal
}

// StoreParams groups dependencies for the wishlist store.
type StoreParams struct {
	Client Client
}

// Store owns the local wishlist snapshot. Safe for concurrent use.
type Store struct {
	client Client

	mu        sync.Mutex
	lines     []models.WishlistLine
	selectAll bool
	issued    uint64
	applied   uint64
}

// NewStore builds a wishlist store with the required dependencies.
func NewStore(params StoreParams) (*Store, error) {
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist client is required")
	}
	return &Store{client: params.Client}, nil
}

// Fetch replaces the snapshot with the server's current wishlist. All
// selected flags come back false.
func (s *Store) Fetch(ctx context.Context) error {
	ticket := s.nextTicket()
	lines, err := s.client.Fetch(ctx)
	if err != nil {
		return err
	}
	s.apply(ticket, lines)
	return nil
}

// Toggle adds the product if absent and removes it if present, then swaps
// in the authoritative collection. Selection does not survive the call.
func (s *Store) Toggle(ctx context.Context, productID string) error {
	ticket := s.nextTicket()
	lines, err := s.client.Toggle(ctx, productID)
	if err != nil {
		return err
	}
	s.apply(ticket, lines)
	return nil
}

// ToggleSelect flips one line's selected flag. Out-of-stock lines are
// excluded from bulk actions and cannot be selected.
func (s *Store) ToggleSelect(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not in wishlist")
	}
	if !s.lines[idx].Selected && !s.lines[idx].InStock() {
		return pkgerrors.New(pkgerrors.CodeValidation, "out-of-stock items cannot be selected")
	}

	s.lines[idx].Selected = !s.lines[idx].Selected
	s.selectAll = s.allInStockSelectedLocked()
	return nil
}

// ToggleSelectAll selects every in-stock line when selectAll is off and
// clears the selection when it is on. Out-of-stock lines stay unselected
// either way.
func (s *Store) ToggleSelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := !s.selectAll
	for i := range s.lines {
		if s.lines[i].InStock() {
			s.lines[i].Selected = target
		} else {
			s.lines[i].Selected = false
		}
	}
	s.selectAll = target && s.hasInStockLocked()
}

// RemoveSelected drops every selected line from the local snapshot only.
// The server is not informed, so the removed items reappear on the next
// Fetch; callers that want the removal persisted must follow up with one
// Toggle per removed product.
func (s *Store) RemoveSelected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make([]string, 0)
	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.Selected {
			removed = append(removed, line.ProductID)
			continue
		}
		kept = append(kept, line)
	}
	s.lines = kept
	s.selectAll = false
	return removed
}

// Lines returns a copy of the current snapshot.
func (s *Store) Lines() []models.WishlistLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WishlistLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// SelectAll reports whether every in-stock line is selected. False when the
// list holds no in-stock lines at all.
func (s *Store) SelectAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectAll
}

// Aggregates computes the selected count and selected total from the
// current snapshot.
func (s *Store) Aggregates() Aggregates {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg := Aggregates{SelectedTotal: decimal.Zero}
	for _, line := range s.lines {
		if !line.Selected {
			continue
		}
		agg.SelectedCount++
		agg.SelectedTotal = agg.SelectedTotal.Add(line.Price.Amount)
	}
	return agg
}

func (s *Store) nextTicket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

func (s *Store) apply(ticket uint64, lines []models.WishlistLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket < s.applied {
		return
	}
	for i := range lines {
		lines[i].Selected = false
	}
	s.applied = ticket
	s.lines = lines
	s.selectAll = false
}

func (s *Store) hasInStockLocked() bool {
	for _, line := range s.lines {
		if line.InStock() {
			return true
		}
	}
	return false
}

func (s *Store) allInStockSelectedLocked() bool {
	seen := false
	for _, line := range s.lines {
		if !line.InStock() {
			continue
		}
		seen = true
		if !line.Selected {
			return false
		}
	}
	return seen
}
