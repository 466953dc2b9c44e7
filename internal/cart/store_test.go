package cart

import (
	"context"
	"testing"

	pkgerrors "github.com/revoire/storefront/pkg/errors"
	"github.com/revoire/storefront/pkg/models"
	"github.com/revoire/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

type stubCartClient struct {
	lines []models.CartLine
	err   error

	fetchCalls    int
	addCalls      int
	decreaseCalls int
}

func (s *stubCartClient) Fetch(ctx context.Context) ([]models.CartLine, error) {
	s.fetchCalls++
	return s.lines, s.err
}

func (s *stubCartClient) AddItem(ctx context.Context, productID string, qty int) ([]models.CartLine, error) {
	s.addCalls++
	return s.lines, s.err
}

func (s *stubCartClient) Increase(ctx context.Context, productID string) ([]models.CartLine, error) {
	return s.lines, s.err
}

func (s *stubCartClient) Decrease(ctx context.Context, productID string) ([]models.CartLine, error) {
	s.decreaseCalls++
	return s.lines, s.err
}

func (s *stubCartClient) Remove(ctx context.Context, productID string) ([]models.CartLine, error) {
	return s.lines, s.err
}

func (s *stubCartClient) Clear(ctx context.Context) ([]models.CartLine, error) {
	return s.lines, s.err
}

func newTestStore(t *testing.T, client Client) *Store {
	t.Helper()
	store, err := NewStore(StoreParams{
		Client:                client,
		FreeShippingThreshold: decimal.NewFromInt(500),
		ShippingFee:           decimal.NewFromInt(25),
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func line(productID string, amount int64, qty int) models.CartLine {
	return models.CartLine{
		ProductID: productID,
		Title:     "Product " + productID,
		Price:     types.NewMoney(amount, types.CurrencyUSD),
		Quantity:  qty,
		Stock:     10,
	}
}

func TestTotalsWithFlatShipping(t *testing.T) {
	t.Parallel()

	client := &stubCartClient{lines: []models.CartLine{
		line("p1", 100, 2),
		line("p2", 50, 1),
	}}
	store := newTestStore(t, client)

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	totals := store.Totals()
	if !totals.Subtotal.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("subtotal = %s, want 250", totals.Subtotal)
	}
	if !totals.Shipping.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("shipping = %s, want 25", totals.Shipping)
	}
	if !totals.Total.Equal(decimal.NewFromInt(275)) {
		t.Fatalf("total = %s, want 275", totals.Total)
	}
}

func TestTotalsFreeShippingAboveThreshold(t *testing.T) {
	t.Parallel()

	client := &stubCartClient{lines: []models.CartLine{line("p1", 600, 1)}}
	store := newTestStore(t, client)

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	totals := store.Totals()
	if !totals.Shipping.IsZero() {
		t.Fatalf("shipping = %s, want 0", totals.Shipping)
	}
	if !totals.Total.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("total = %s, want 600", totals.Total)
	}
}

func TestTotalsEmptyCart(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, &stubCartClient{})

	totals := store.Totals()
	if !totals.Subtotal.IsZero() || !totals.Shipping.IsZero() || !totals.Total.IsZero() {
		t.Fatalf("empty cart totals should all be zero, got %+v", totals)
	}
}

func TestMutationReplacesCollection(t *testing.T) {
	t.Parallel()

	client := &stubCartClient{lines: []models.CartLine{line("p1", 999, 1)}}
	store := newTestStore(t, client)

	if err := store.Add(context.Background(), "p1", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := store.Lines(); len(got) != 1 || got[0].ProductID != "p1" {
		t.Fatalf("unexpected lines: %+v", got)
	}

	// The server drops the line when quantity would hit zero; the store
	// trusts the returned collection without special-casing.
	client.lines = nil
	if err := store.Decrease(context.Background(), "p1"); err != nil {
		t.Fatalf("decrease: %v", err)
	}
	if got := store.Lines(); len(got) != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestFailedMutationLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	client := &stubCartClient{lines: []models.CartLine{line("p1", 100, 1)}}
	store := newTestStore(t, client)
	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	client.err = pkgerrors.New(pkgerrors.CodeNetwork, "cart unreachable")
	client.lines = nil

	err := store.Increase(context.Background(), "p1")
	if !pkgerrors.Is(err, pkgerrors.CodeNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if got := store.Lines(); len(got) != 1 || got[0].Quantity != 1 {
		t.Fatalf("snapshot should be untouched after failure, got %+v", got)
	}
}

func TestAddRejectsZeroQuantity(t *testing.T) {
	t.Parallel()

	client := &stubCartClient{}
	store := newTestStore(t, client)

	err := store.Add(context.Background(), "p1", 0)
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if client.addCalls != 0 {
		t.Fatal("no request should be sent for an invalid quantity")
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, &stubCartClient{})

	slow := store.nextTicket()
	fast := store.nextTicket()

	if !store.apply(fast, []models.CartLine{line("p1", 100, 2)}) {
		t.Fatal("newer response should apply")
	}
	if store.apply(slow, []models.CartLine{line("p1", 100, 1)}) {
		t.Fatal("stale response should be discarded")
	}
	if got := store.Lines(); got[0].Quantity != 2 {
		t.Fatalf("stale response overwrote the snapshot: %+v", got)
	}
}

func TestNewStoreRequiresClient(t *testing.T) {
	t.Parallel()

	_, err := NewStore(StoreParams{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
