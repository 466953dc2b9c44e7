// Package catalog holds the product list, the filter state and the
// incremental "load more" cursor. Changing any query field invalidates the
// pagination position; a full page read back from the server is the
// heuristic for "there is more".
package catalog

import (
	"context"
	"sync"

	"github.com/revoire/storefront/internal/api"
	pkgerrors "github.com/revoire/storefront/pkg/errors"
	"github.com/revoire/storefront/pkg/models"
	"github.com/shopspring/decimal"
)

const defaultPageSize = 20

// Client is the slice of the catalog service the store depends on.
type Client interface {
	List(ctx context.Context, query api.ListQuery) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, input api.ProductInput) (models.Product, error)
	Update(ctx context.Context, id string, input api.ProductInput) (models.Product, error)
	Delete(ctx context.Context, id string) error
}

var _ Client = (*api.ProductsClient)(nil)

// Filters is the current query state. Nil price bounds mean unset and are
// omitted from the outgoing request.
type Filters struct {
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Skip     int
	PageSize int
}

// Patch updates a subset of filter fields; nil fields are left alone.
type Patch struct {
	Search   *string
	Category *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// StoreParams groups dependencies for the catalog store.
type StoreParams struct {
	Client   Client
	PageSize int
}

// Store owns the product list and filter cursor. Safe for concurrent use.
type Store struct {
	client Client

	mu       sync.Mutex
	filters  Filters
	products []models.Product
	product  *models.Product
	hasMore  bool
	inFlight bool
	issued   uint64
	applied  uint64
}

// NewStore builds a catalog store with the required dependencies.
func NewStore(params StoreParams) (*Store, error) {
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog client is required")
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Store{
		client:  params.Client,
		filters: Filters{PageSize: pageSize},
		hasMore: true,
	}, nil
}

// SetSearch updates the search text and resets the pagination cursor.
func (s *Store) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Search = search
	s.filters.Skip = 0
}

// SetCategory updates the category filter and resets the pagination cursor.
func (s *Store) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Category = category
	s.filters.Skip = 0
}

// SetPriceRange updates the price bounds and resets the pagination cursor.
func (s *Store) SetPriceRange(minPrice, maxPrice *decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.MinPrice = minPrice
	s.filters.MaxPrice = maxPrice
	s.filters.Skip = 0
}

// SetFilters applies a partial update. The cursor resets only when at least
// one query field actually changes hands.
func (s *Store) SetFilters(patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	touched := false
	if patch.Search != nil {
		s.filters.Search = *patch.Search
		touched = true
	}
	if patch.Category != nil {
		s.filters.Category = *patch.Category
		touched = true
	}
	if patch.MinPrice != nil {
		s.filters.MinPrice = patch.MinPrice
		touched = true
	}
	if patch.MaxPrice != nil {
		s.filters.MaxPrice = patch.MaxPrice
		touched = true
	}
	if touched {
		s.filters.Skip = 0
	}
}

// ResetFilters restores the default query state.
func (s *Store) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = Filters{PageSize: s.filters.PageSize}
}

// Filters returns the current query state.
func (s *Store) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Fetch replaces the product list with the first/current page and derives
// hasMore from the returned count. A short page reads as "last page".
func (s *Store) Fetch(ctx context.Context) error {
	ticket := s.nextTicket()
	query := s.query()

	products, err := s.client.List(ctx, query)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket < s.applied {
		return nil
	}
	s.applied = ticket
	s.products = products
	s.hasMore = len(products) == query.Limit
	return nil
}

// LoadMore advances the cursor by one page and appends the result. It is a
// no-op when the last page was short or another fetch is in flight. On
// failure the cursor rolls back so a retry refetches the same page.
func (s *Store) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if !s.hasMore || s.inFlight {
		s.mu.Unlock()
		return nil
	}
	s.inFlight = true
	s.filters.Skip += s.filters.PageSize
	s.issued++
	ticket := s.issued
	query := api.ListQuery{
		Search:   s.filters.Search,
		Category: s.filters.Category,
		MinPrice: s.filters.MinPrice,
		MaxPrice: s.filters.MaxPrice,
		Skip:     s.filters.Skip,
		Limit:    s.filters.PageSize,
	}
	s.mu.Unlock()

	products, err := s.client.List(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		s.filters.Skip -= s.filters.PageSize
		return err
	}
	if ticket < s.applied {
		return nil
	}
	s.applied = ticket
	s.products = append(s.products, products...)
	s.hasMore = len(products) == query.Limit
	return nil
}

// HasMore reports whether another page is expected to exist.
func (s *Store) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// Products returns a copy of the current list.
func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// FetchByID loads one product and tracks it as the current detail view.
func (s *Store) FetchByID(ctx context.Context, id string) (models.Product, error) {
	product, err := s.client.Get(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	s.mu.Lock()
	s.product = &product
	s.mu.Unlock()
	return product, nil
}

// Current returns the tracked detail product, if any.
func (s *Store) Current() (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.product == nil {
		return models.Product{}, false
	}
	return *s.product, true
}

// ClearProduct drops the tracked detail product.
func (s *Store) ClearProduct() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.product = nil
}

// CreateProduct registers a product, then refetches the list so the new
// entry carries its server-assigned ID.
func (s *Store) CreateProduct(ctx context.Context, input api.ProductInput) (models.Product, error) {
	product, err := s.client.Create(ctx, input)
	if err != nil {
		return models.Product{}, err
	}
	if err := s.Fetch(ctx); err != nil {
		return product, err
	}
	return product, nil
}

// UpdateProduct patches the product in place with the server's response.
func (s *Store) UpdateProduct(ctx context.Context, id string, input api.ProductInput) (models.Product, error) {
	product, err := s.client.Update(ctx, id, input)
	if err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = product
			break
		}
	}
	if s.product != nil && s.product.ID == id {
		s.product = &product
	}
	return product, nil
}

// DeleteProduct removes the product remotely, then locally.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.products[:0]
	for _, product := range s.products {
		if product.ID != id {
			kept = append(kept, product)
		}
	}
	s.products = kept
	if s.product != nil && s.product.ID == id {
		s.product = nil
	}
	return nil
}

func (s *Store) query() api.ListQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return api.ListQuery{
		Search:   s.filters.Search,
		Category: s.filters.Category,
		MinPrice: s.filters.MinPrice,
		MaxPrice: s.filters.MaxPrice,
		Skip:     s.filters.Skip,
		Limit:    s.filters.PageSize,
	}
}

func (s *Store) nextTicket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}
