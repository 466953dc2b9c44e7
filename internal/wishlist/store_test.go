package wishlist

import (
	"context"
	"testing"

	pkgerrors "github.com/revoire/storefront/pkg/errors"
	"github.com/revoire/storefront/pkg/models"
	"github.com/revoire/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

type stubWishlistClient struct {
	lines       []models.WishlistLine
	err         error
	fetchCalls  int
	toggleCalls int
}

func (s *stubWishlistClient) Fetch(ctx context.Context) ([]models.WishlistLine, error) {
	s.fetchCalls++
	return s.lines, s.err
}

func (s *stubWishlistClient) Toggle(ctx context.Context, productID string) ([]models.WishlistLine, error) {
	s.toggleCalls++
	return s.lines, s.err
}

func wline(productID string, amount int64, stock int) models.WishlistLine {
	return models.WishlistLine{
		ProductID: productID,
		Title:     "Product " + productID,
		Price:     types.NewMoney(amount, types.CurrencyUSD),
		Stock:     stock,
	}
}

func newTestStore(t *testing.T, client Client) *Store {
	t.Helper()
	store, err := NewStore(StoreParams{Client: client})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

// checkAggregates re-derives the selection aggregates from the lines and
// compares them to what the store reports.
func checkAggregates(t *testing.T, store *Store) {
	t.Helper()

	wantCount := 0
	wantTotal := decimal.Zero
	for _, line := range store.Lines() {
		if line.Selected {
			wantCount++
			wantTotal = wantTotal.Add(line.Price.Amount)
		}
	}

	agg := store.Aggregates()
	if agg.SelectedCount != wantCount {
		t.Fatalf("selectedCount = %d, want %d", agg.SelectedCount, wantCount)
	}
	if !agg.SelectedTotal.Equal(wantTotal) {
		t.Fatalf("selectedTotal = %s, want %s", agg.SelectedTotal, wantTotal)
	}
}

func fetched(t *testing.T, lines ...models.WishlistLine) (*Store, *stubWishlistClient) {
	t.Helper()
	client := &stubWishlistClient{lines: lines}
	store := newTestStore(t, client)
	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	return store, client
}

func TestToggleSelectFlipsAndRecomputes(t *testing.T) {
	t.Parallel()

	store, _ := fetched(t, wline("p1", 100, 5), wline("p2", 50, 3))

	if err := store.ToggleSelect("p1"); err != nil {
		t.Fatalf("toggle select: %v", err)
	}
	checkAggregates(t, store)
	if agg := store.Aggregates(); agg.SelectedCount != 1 || !agg.SelectedTotal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected aggregates: %+v", agg)
	}
	if store.SelectAll() {
		t.Fatal("selectAll should be false with one of two selected")
	}

	if err := store.ToggleSelect("p2"); err != nil {
		t.Fatalf("toggle select: %v", err)
	}
	checkAggregates(t, store)
	if !store.SelectAll() {
		t.Fatal("selectAll should flip on once every in-stock line is selected")
	}

	if err := store.ToggleSelect("p1"); err != nil {
		t.Fatalf("toggle select: %v", err)
	}
	if store.SelectAll() {
		t.Fatal("selectAll should drop after a deselect")
	}
	checkAggregates(t, store)
}

func TestToggleSelectRejectsOutOfStock(t *testing.T) {
	t.Parallel()

	store, _ := fetched(t, wline("p1", 100, 0))

	err := store.ToggleSelect("p1")
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	checkAggregates(t, store)
}

func TestToggleSelectUnknownProduct(t *testing.T) {
	t.Parallel()

	store, _ := fetched(t, wline("p1", 100, 5))

	if err := store.ToggleSelect("missing"); !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggleSelectAllExcludesOutOfStock(t *testing.T) {
	t.Parallel()

	store, _ := fetched(t, wline("p1", 100, 5), wline("p2", 50, 0), wline("p3", 75, 2))

	store.ToggleSelectAll()
	checkAggregates(t, store)

	for _, line := range store.Lines() {
		if line.Stock > 0 && !line.Selected {
			t.Fatalf("in-stock line %s should be selected", line.ProductID)
		}
		if line.Stock <= 0 && line.Selected {
			t.Fatalf("out-of-stock line %s must never be selected", line.ProductID)
		}
	}
	if !store.SelectAll() {
		t.Fatal("selectAll should be on")
	}
	if agg := store.Aggregates(); agg.SelectedCount != 2 || !agg.SelectedTotal.Equal(decimal.NewFromInt(175)) {
		t.Fatalf("unexpected aggregates: %+v", agg)
	}

	store.ToggleSelectAll()
	checkAggregates(t, store)
	if agg := store.Aggregates(); agg.SelectedCount != 0 {
		t.Fatalf("second toggle should clear selection, got %+v", agg)
	}
}

func TestToggleSelectAllWithNoInStockLines(t *testing.T) {
	t.Parallel()

	store, _ := fetched(t, wline("p1", 100, 0))

	store.ToggleSelectAll()
	if store.SelectAll() {
		t.Fatal("selectAll must stay off when nothing can be selected")
	}
	checkAggregates(t, store)
}

func TestSelectionResetOnToggleWishlist(t *testing.T) {
	t.Parallel()

	store, client := fetched(t, wline("p1", 100, 5), wline("p2", 50, 3))
	store.ToggleSelectAll()

	// The server answers the toggle with the authoritative collection;
	// selection does not survive it.
	client.lines = []models.WishlistLine{wline("p1", 100, 5)}
	if err := store.Toggle(context.Background(), "p2"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	for _, line := range store.Lines() {
		if line.Selected {
			t.Fatalf("line %s still selected after refetch", line.ProductID)
		}
	}
	if store.SelectAll() {
		t.Fatal("selectAll should reset on refetch")
	}
	checkAggregates(t, store)
}

func TestRemoveSelectedIsLocalOnly(t *testing.T) {
	t.Parallel()

	store, client := fetched(t, wline("p1", 100, 5), wline("p2", 50, 3), wline("p3", 75, 1))
	if err := store.ToggleSelect("p1"); err != nil {
		t.Fatalf("toggle select: %v", err)
	}
	if err := store.ToggleSelect("p3"); err != nil {
		t.Fatalf("toggle select: %v", err)
	}

	toggles := client.toggleCalls
	removed := store.RemoveSelected()

	if client.toggleCalls != toggles {
		t.Fatal("removeSelected must not call the remote service")
	}
	if len(removed) != 2 {
		t.Fatalf("removed = %v, want two products", removed)
	}
	lines := store.Lines()
	if len(lines) != 1 || lines[0].ProductID != "p2" {
		t.Fatalf("unexpected remaining lines: %+v", lines)
	}
	checkAggregates(t, store)
}

func TestFailedToggleLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	store, client := fetched(t, wline("p1", 100, 5))
	client.err = pkgerrors.New(pkgerrors.CodeServer, "wishlist blew up")

	err := store.Toggle(context.Background(), "p1")
	if !pkgerrors.Is(err, pkgerrors.CodeServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if got := store.Lines(); len(got) != 1 {
		t.Fatalf("snapshot should be untouched, got %+v", got)
	}
}
