package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/revoire/storefront/pkg/models"
	"github.com/revoire/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

// ListQuery carries catalog filters. Empty fields are omitted from the
// outgoing query so the service never sees "" as a literal filter value.
type ListQuery struct {
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Skip     int
	Limit    int
}

func (q ListQuery) values() url.Values {
	values := url.Values{}
	if strings.TrimSpace(q.Search) != "" {
		values.Set("q", q.Search)
	}
	if strings.TrimSpace(q.Category) != "" {
		values.Set("category", q.Category)
	}
	if q.MinPrice != nil {
		values.Set("minPrice", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		values.Set("maxPrice", q.MaxPrice.String())
	}
	if q.Skip > 0 {
		values.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values
}

// ProductInput is the payload for seller-side product writes.
type ProductInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category"`
	Images      []string    `json:"images,omitempty"`
	Price       types.Money `json:"price"`
	Stock       int         `json:"stock"`
}

type productsEnvelope struct {
	Products []models.Product `json:"products"`
}

type productEnvelope struct {
	Product models.Product `json:"product"`
}

// ProductsClient talks to the catalog service.
type ProductsClient struct {
	*client
}

// NewProductsClient builds a client for the catalog service.
func NewProductsClient(params Params) (*ProductsClient, error) {
	if params.Service == "" {
		params.Service = "catalog"
	}
	base, err := newClient(params)
	if err != nil {
		return nil, err
	}
	return &ProductsClient{client: base}, nil
}

// List returns one page of products matching the query.
func (c *ProductsClient) List(ctx context.Context, query ListQuery) ([]models.Product, error) {
	var envelope productsEnvelope
	if err := c.do(ctx, "list", http.MethodGet, "/", query.values(), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Products, nil
}

// Get returns a single product by ID.
func (c *ProductsClient) Get(ctx context.Context, id string) (models.Product, error) {
	var envelope productEnvelope
	if err := c.do(ctx, "get", http.MethodGet, "/"+url.PathEscape(id), nil, nil, &envelope); err != nil {
		return models.Product{}, err
	}
	return envelope.Product, nil
}

// Create registers a new product (seller only).
func (c *ProductsClient) Create(ctx context.Context, input ProductInput) (models.Product, error) {
	var envelope productEnvelope
	if err := c.do(ctx, "create", http.MethodPost, "/", nil, input, &envelope); err != nil {
		return models.Product{}, err
	}
	return envelope.Product, nil
}

// Update patches an existing product (seller only).
func (c *ProductsClient) Update(ctx context.Context, id string, input ProductInput) (models.Product, error) {
	var envelope productEnvelope
	if err := c.do(ctx, "update", http.MethodPatch, "/"+url.PathEscape(id), nil, input, &envelope); err != nil {
		return models.Product{}, err
	}
	return envelope.Product, nil
}

// Delete removes a product (seller only).
func (c *ProductsClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, "/"+url.PathEscape(id), nil, nil, nil)
}
