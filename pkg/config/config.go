package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Services ServicesConfig
	Checkout CheckoutConfig
	Catalog  CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	LogLevel string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// ServicesConfig holds the base URLs of the remote storefront services.
// Each entity collection lives behind its own service.
type ServicesConfig struct {
	CatalogURL  string        `envconfig:"STOREFRONT_CATALOG_URL" default:"http://localhost:3001/api/products"`
	CartURL     string        `envconfig:"STOREFRONT_CART_URL" default:"http://localhost:3002/api/cart"`
	WishlistURL string        `envconfig:"STOREFRONT_WISHLIST_URL" default:"http://localhost:3002/api/wishlist"`
	OrderURL    string        `envconfig:"STOREFRONT_ORDER_URL" default:"http://localhost:3003/api/orders"`
	SellerURL   string        `envconfig:"STOREFRONT_SELLER_URL" default:"http://localhost:3008/api/seller/dashboard"`
	Timeout     time.Duration `envconfig:"STOREFRONT_HTTP_TIMEOUT" default:"10s"`
}

// CheckoutConfig drives the cart's derived shipping total.
type CheckoutConfig struct {
	FreeShippingThreshold decimal.Decimal `envconfig:"STOREFRONT_FREE_SHIPPING_THRESHOLD" default:"500"`
	ShippingFee           decimal.Decimal `envconfig:"STOREFRONT_SHIPPING_FEE" default:"25"`
}

type CatalogConfig struct {
	PageSize int `envconfig:"STOREFRONT_CATALOG_PAGE_SIZE" default:"20"`
}
