package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	cartapp "github.com/geministore/storefront/internal/cart/app"
	cartdomain "github.com/geministore/storefront/internal/cart/domain"
	cartadapter "github.com/geministore/storefront/internal/cart/infra/adapter"
	"github.com/geministore/storefront/internal/cart/infra/storage"
	catalogapp "github.com/geministore/storefront/internal/catalog/app"
	"github.com/geministore/storefront/internal/catalog/infra/static"
	checkoutapp "github.com/geministore/storefront/internal/checkout/app"
	checkoutadapter "github.com/geministore/storefront/internal/checkout/infra/adapter"
	"github.com/geministore/storefront/internal/checkout/infra/payment"
	transport "github.com/geministore/storefront/internal/transport/http"
	"github.com/geministore/storefront/pkg/config"
	"github.com/geministore/storefront/pkg/logger"
	"github.com/geministore/storefront/pkg/metrics"
	"github.com/geministore/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	store, err := storage.NewFileStore(cfg.StoragePath, log)
	if err != nil {
		log.Error("storage init failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Catalog
	catalogRepo := static.NewProductRepo()
	catalogSvc := catalogapp.NewService(catalogRepo)

	// Cart
	catalogReader := cartadapter.NewCatalogServiceReader(catalogSvc)
	cartStore := cartapp.NewStore(catalogReader, store,
		cartapp.WithPricing(pricingFrom(cfg)),
		cartapp.WithLogger(log),
	)
	cartStore.Reload(ctx)

	// Checkout
	cartGateway := checkoutadapter.NewCartStoreGateway(cartStore)
	processor := payment.NewMockProcessor(cfg.PaymentSuccessRate, cfg.PaymentDelay, cfg.PaymentSeed)
	checkoutSvc := checkoutapp.NewService(cartGateway, processor, log)

	m := metrics.New("api")
	cartStore.Subscribe(func(ch cartapp.Change) {
		m.CartItems.Set(float64(ch.ItemCount))
		total, _ := ch.Total.Float64()
		m.CartValue.Set(total)
	})

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := transport.NewRouter(transport.NewHandler(catalogSvc, cartStore, checkoutSvc, m))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func pricingFrom(cfg config.Config) cartdomain.Pricing {
	return cartdomain.Pricing{
		TaxRate:          decimal.NewFromFloat(cfg.TaxRate),
		FreeShippingOver: decimal.NewFromFloat(cfg.FreeShippingOver),
		ShippingFee:      decimal.NewFromFloat(cfg.ShippingFee),
	}
}
