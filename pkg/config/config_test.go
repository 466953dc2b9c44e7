package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsDev())
	assert.Equal(t, 20, cfg.Catalog.PageSize)
	assert.True(t, cfg.Checkout.FreeShippingThreshold.Equal(decimal.NewFromInt(500)))
	assert.True(t, cfg.Checkout.ShippingFee.Equal(decimal.NewFromInt(25)))
	assert.NotEmpty(t, cfg.Services.CartURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_APP_ENV", "prod")
	t.Setenv("STOREFRONT_CART_URL", "https://cart.internal/api/cart")
	t.Setenv("STOREFRONT_SHIPPING_FEE", "12.50")
	t.Setenv("STOREFRONT_CATALOG_PAGE_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProd())
	assert.Equal(t, "https://cart.internal/api/cart", cfg.Services.CartURL)
	assert.True(t, cfg.Checkout.ShippingFee.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, 50, cfg.Catalog.PageSize)
}
