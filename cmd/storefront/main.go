// Command storefront runs a short browse/cart/checkout flow against the
// configured storefront services and logs the store state after each step.
// Point it at cmd/mockapi for a self-contained demo.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/revoire/storefront/internal/api"
	"github.com/revoire/storefront/internal/cart"
	"github.com/revoire/storefront/internal/catalog"
	"github.com/revoire/storefront/internal/orders"
	"github.com/revoire/storefront/internal/wishlist"
	"github.com/revoire/storefront/pkg/config"
	"github.com/revoire/storefront/pkg/logger"
	"github.com/revoire/storefront/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	requestMetrics := metrics.NewRequestMetrics(prometheus.NewRegistry())

	catalogStore, cartStore, wishlistStore, orderStore, err := buildStores(cfg, logg, requestMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to build stores", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := catalogStore.Fetch(ctx); err != nil {
		logg.Error(ctx, "catalog fetch failed", err)
		os.Exit(1)
	}
	products := catalogStore.Products()
	logg.Info(logg.WithField(ctx, "count", len(products)), "catalog page loaded")
	if len(products) == 0 {
		logg.Warn(ctx, "catalog is empty, nothing to demo")
		return
	}

	first := products[0]
	if err := wishlistStore.Toggle(ctx, first.ID); err != nil {
		logg.Error(logg.WithProductID(ctx, first.ID), "wishlist toggle failed", err)
	}

	if err := cartStore.Add(ctx, first.ID, 2); err != nil {
		logg.Error(logg.WithProductID(ctx, first.ID), "add to cart failed", err)
		os.Exit(1)
	}
	totals := cartStore.Totals()
	logg.Info(logg.WithFields(ctx, map[string]any{
		"subtotal": totals.Subtotal.String(),
		"shipping": totals.Shipping.String(),
		"total":    totals.Total.String(),
	}), "cart updated")

	order, err := orderStore.Create(ctx)
	if err != nil {
		logg.Error(ctx, "checkout failed", err)
		os.Exit(1)
	}
	stats := orderStore.Stats()
	logg.Info(logg.WithFields(ctx, map[string]any{
		"order_id": order.ID,
		"status":   string(order.Status),
		"orders":   stats.Total,
	}), "order placed")
}

func buildStores(cfg *config.Config, logg *logger.Logger, requestMetrics *metrics.RequestMetrics) (*catalog.Store, *cart.Store, *wishlist.Store, *orders.Store, error) {
	productsClient, err := api.NewProductsClient(api.Params{
		BaseURL: cfg.Services.CatalogURL,
		Logger:  logg,
		Metrics: requestMetrics,
		Timeout: cfg.Services.Timeout,
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cartClient, err := api.NewCartClient(api.Params{
		BaseURL: cfg.Services.CartURL,
		Logger:  logg,
		Metrics: requestMetrics,
		Timeout: cfg.Services.Timeout,
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	wishlistClient, err := api.NewWishlistClient(api.Params{
		BaseURL: cfg.Services.WishlistURL,
		Logger:  logg,
		Metrics: requestMetrics,
		Timeout: cfg.Services.Timeout,
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	ordersClient, err := api.NewOrdersClient(api.Params{
		BaseURL: cfg.Services.OrderURL,
		Logger:  logg,
		Metrics: requestMetrics,
		Timeout: cfg.Services.Timeout,
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}

	catalogStore, err := catalog.NewStore(catalog.StoreParams{
		Client:   productsClient,
		PageSize: cfg.Catalog.PageSize,
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cartStore, err := cart.NewStore(cart.StoreParams{
		Client:                cartClient,
		FreeShippingThreshold: cfg.Checkout.FreeShippingThreshold,
		ShippingFee:           cfg.Checkout.ShippingFee,
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	wishlistStore, err := wishlist.NewStore(wishlist.StoreParams{Client: wishlistClient})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	orderStore, err := orders.NewStore(orders.StoreParams{Client: ordersClient})
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return catalogStore, cartStore, wishlistStore, orderStore, nil
}
