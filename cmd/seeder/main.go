package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/seed"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/services"
)

func main() {
	envFile := flag.String("env", config.DefaultEnvFile, "path to a .env file")
	fixtureFile := flag.String("file", "", "fixture file (defaults to SEED_FILE)")
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		slog.Error("failed to load env file", "path", *envFile, "error", err)
		os.Exit(1)
	}
	cfg := config.Load()
	logging.Setup(cfg.AppEnv)

	path := *fixtureFile
	if path == "" {
		path = cfg.SeedFile
	}
	fixture, err := seed.LoadFile(path)
	if err != nil {
		slog.Error("failed to load fixtures", "path", path, "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	ctx := context.Background()
	if err := database.ApplySchema(ctx, db); err != nil {
		slog.Error("schema bootstrap failed", "error", err)
		os.Exit(1)
	}

	stores := seed.Stores{
		Users:       services.NewUserService(db),
		Products:    services.NewProductService(db),
		Addresses:   services.NewAddressService(db),
		PaymentInfo: services.NewPaymentInfoService(db),
		Baskets:     services.NewBasketService(db),
		Items:       services.NewBasketItemService(db),
		Orders:      services.NewOrderService(db),
	}
	if _, err := seed.Run(ctx, stores, fixture); err != nil {
		slog.Error("seeding failed", "path", path, "error", err)
		_ = database.Close(db)
		os.Exit(1)
	}
}
