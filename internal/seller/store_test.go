package seller

import (
	"context"
	"testing"

	pkgerrors "github.com/revoire/storefront/pkg/errors"
	"github.com/revoire/storefront/pkg/models"
	"github.com/revoire/storefront/pkg/types"
)

type stubSellerClient struct {
	metrics  models.SellerMetrics
	products []models.Product
	orders   []models.OrderRecord
	err      error
}

func (s *stubSellerClient) Metrics(ctx context.Context) (models.SellerMetrics, error) {
	return s.metrics, s.err
}

func (s *stubSellerClient) Products(ctx context.Context) ([]models.Product, error) {
	return s.products, s.err
}

func (s *stubSellerClient) Orders(ctx context.Context) ([]models.OrderRecord, error) {
	return s.orders, s.err
}

func TestDashboardFetches(t *testing.T) {
	t.Parallel()

	client := &stubSellerClient{
		metrics: models.SellerMetrics{
			TotalProducts: 3,
			TotalOrders:   2,
			PendingOrders: 1,
			TotalRevenue:  types.NewMoney(450, types.CurrencyUSD),
		},
		products: []models.Product{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
		orders:   []models.OrderRecord{{ID: "o1"}, {ID: "o2"}},
	}
	store, err := NewStore(StoreParams{Client: client})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, ok := store.Metrics(); ok {
		t.Fatal("metrics should be absent before the first fetch")
	}

	ctx := context.Background()
	if err := store.FetchMetrics(ctx); err != nil {
		t.Fatalf("fetch metrics: %v", err)
	}
	if err := store.FetchProducts(ctx); err != nil {
		t.Fatalf("fetch products: %v", err)
	}
	if err := store.FetchOrders(ctx); err != nil {
		t.Fatalf("fetch orders: %v", err)
	}

	metrics, ok := store.Metrics()
	if !ok || metrics.TotalProducts != 3 || metrics.PendingOrders != 1 {
		t.Fatalf("unexpected metrics: %+v ok=%v", metrics, ok)
	}
	if got := store.Products(); len(got) != 3 {
		t.Fatalf("products = %+v", got)
	}
	if got := store.Orders(); len(got) != 2 {
		t.Fatalf("orders = %+v", got)
	}
}

func TestFailedFetchKeepsSnapshot(t *testing.T) {
	t.Parallel()

	client := &stubSellerClient{products: []models.Product{{ID: "p1"}}}
	store, err := NewStore(StoreParams{Client: client})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.FetchProducts(context.Background()); err != nil {
		t.Fatalf("fetch products: %v", err)
	}

	client.err = pkgerrors.New(pkgerrors.CodeServer, "dashboard unavailable")
	if err := store.FetchProducts(context.Background()); !pkgerrors.Is(err, pkgerrors.CodeServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if got := store.Products(); len(got) != 1 {
		t.Fatalf("snapshot should survive the failure: %+v", got)
	}
}

func TestProductListMaintenance(t *testing.T) {
	t.Parallel()

	store, err := NewStore(StoreParams{Client: &stubSellerClient{}})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	store.AddProductToList(models.Product{ID: "p1", Title: "Original"})
	store.AddProductToList(models.Product{ID: "p2"})

	store.UpdateProductInList(models.Product{ID: "p1", Title: "Renamed"})
	if got := store.Products(); got[0].Title != "Renamed" {
		t.Fatalf("update not applied: %+v", got)
	}

	store.RemoveProductFromList("p1")
	if got := store.Products(); len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("remove not applied: %+v", got)
	}
}
