package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/revoire/storefront/internal/mockapi"
	"github.com/revoire/storefront/pkg/config"
	"github.com/revoire/storefront/pkg/env"
	"github.com/revoire/storefront/pkg/logger"
	"github.com/revoire/storefront/pkg/models"
	"github.com/revoire/storefront/pkg/types"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "mockapi"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "mockapi",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	server := mockapi.NewServer(mockapi.Options{
		Logger:                logg,
		FreeShippingThreshold: cfg.Checkout.FreeShippingThreshold,
		ShippingFee:           cfg.Checkout.ShippingFee,
	})
	server.SeedProducts(demoCatalog()...)

	addr := ":" + env.Get("PORT", "3001")
	logg.Info(logg.WithField(context.Background(), "addr", addr), "mock storefront services listening")
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		logg.Error(context.Background(), "server stopped", err)
		os.Exit(1)
	}
}

func demoCatalog() []models.Product {
	return []models.Product{
		{
			Title:    "Linen Shirt",
			Category: "Clothing",
			Images:   []string{"https://img.example/linen-shirt.jpg"},
			Price:    types.NewMoney(120, types.CurrencyUSD),
			Stock:    14,
		},
		{
			Title:    "Leather Tote",
			Category: "Bags",
			Images:   []string{"https://img.example/leather-tote.jpg"},
			Price:    types.NewMoney(320, types.CurrencyUSD),
			Stock:    6,
		},
		{
			Title:    "Silk Scarf",
			Category: "Accessories",
			Images:   []string{"https://img.example/silk-scarf.jpg"},
			Price:    types.NewMoney(85, types.CurrencyUSD),
			Stock:    0,
		},
		{
			Title:    "Wool Coat",
			Category: "Clothing",
			Images:   []string{"https://img.example/wool-coat.jpg"},
			Price:    types.NewMoney(540, types.CurrencyUSD),
			Stock:    3,
		},
	}
}
