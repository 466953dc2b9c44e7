package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/revoire/storefront/pkg/errors"
	"github.com/revoire/storefront/pkg/models"
	"github.com/revoire/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

func newCartClient(t *testing.T, baseURL string) *CartClient {
	t.Helper()
	client, err := NewCartClient(Params{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewCartClient: %v", err)
	}
	return client
}

func newProductsClient(t *testing.T, baseURL string) *ProductsClient {
	t.Helper()
	client, err := NewProductsClient(Params{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewProductsClient: %v", err)
	}
	return client
}

func TestCartEnvelopeDecoding(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		payload := map[string]any{"cart": map[string]any{"items": []models.CartLine{{
			ProductID: "p1",
			Title:     "Linen Shirt",
			Price:     types.NewMoney(120, types.CurrencyUSD),
			Quantity:  2,
			Stock:     14,
		}}}}
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	lines, err := newCartClient(t, server.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductID != "p1" || lines[0].Quantity != 2 {
		t.Fatalf("unexpected lines: %+v", lines)
	}
	if !lines[0].Price.Amount.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("price = %s", lines[0].Price.Amount)
	}
}

func TestListOmitsEmptyQueryFields(t *testing.T) {
	t.Parallel()

	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{"products": []models.Product{}})
	}))
	defer server.Close()

	maxPrice := decimal.NewFromInt(200)
	_, err := newProductsClient(t, server.URL).List(context.Background(), ListQuery{
		Search:   "coat",
		MaxPrice: &maxPrice,
		Limit:    20,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if got := gotQuery["q"]; len(got) != 1 || got[0] != "coat" {
		t.Fatalf("q = %v", got)
	}
	if got := gotQuery["maxPrice"]; len(got) != 1 || got[0] != "200" {
		t.Fatalf("maxPrice = %v", got)
	}
	for _, key := range []string{"category", "minPrice", "skip"} {
		if _, present := gotQuery[key]; present {
			t.Fatalf("empty field %q should be omitted, query = %v", key, gotQuery)
		}
	}
}

func TestErrorEnvelopeMessageSurfaces(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(types.ErrorEnvelope{Error: types.APIError{
			Code:    "NOT_FOUND",
			Message: "product vanished",
		}})
	}))
	defer server.Close()

	_, err := newProductsClient(t, server.URL).Get(context.Background(), "ghost")
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if got := pkgerrors.As(err).Message(); got != "product vanished" {
		t.Fatalf("message = %q", got)
	}
}

func TestStatusCodeMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		want   pkgerrors.Code
	}{
		{"unprocessable maps to state conflict", http.StatusUnprocessableEntity, pkgerrors.CodeStateConflict},
		{"internal maps to server error", http.StatusInternalServerError, pkgerrors.CodeServer},
		{"bad request maps to server error", http.StatusBadRequest, pkgerrors.CodeServer},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Non-JSON body exercises the fallback message path.
				w.WriteHeader(tc.status)
				w.Write([]byte("boom"))
			}))
			defer server.Close()

			_, err := newCartClient(t, server.URL).Fetch(context.Background())
			if !pkgerrors.Is(err, tc.want) {
				t.Fatalf("expected %s, got %v", tc.want, err)
			}
			details, ok := pkgerrors.As(err).Details().(map[string]any)
			if !ok || details["status"] != tc.status {
				t.Fatalf("details = %v", details)
			}
		})
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newCartClient(t, server.URL).Fetch(context.Background())
	if !pkgerrors.Is(err, pkgerrors.CodeNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestMalformedBodyIsServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	_, err := newCartClient(t, server.URL).Fetch(context.Background())
	if !pkgerrors.Is(err, pkgerrors.CodeServer) {
		t.Fatalf("expected server error, got %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewCartClient(Params{}); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := newClient(Params{BaseURL: "http://localhost"}); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for missing service, got %v", err)
	}
}
