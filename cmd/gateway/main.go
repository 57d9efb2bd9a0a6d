package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/foodhubhq/storefront-gateway/api"
	"github.com/foodhubhq/storefront-gateway/api/controllers"
	"github.com/foodhubhq/storefront-gateway/api/routes"
	adminsvc "github.com/foodhubhq/storefront-gateway/internal/admin"
	"github.com/foodhubhq/storefront-gateway/internal/cart"
	catalogsvc "github.com/foodhubhq/storefront-gateway/internal/catalog"
	checkoutsvc "github.com/foodhubhq/storefront-gateway/internal/checkout"
	"github.com/foodhubhq/storefront-gateway/internal/gate"
	orderssvc "github.com/foodhubhq/storefront-gateway/internal/orders"
	providersvc "github.com/foodhubhq/storefront-gateway/internal/provider"
	userssvc "github.com/foodhubhq/storefront-gateway/internal/users"
	"github.com/foodhubhq/storefront-gateway/pkg/backend"
	"github.com/foodhubhq/storefront-gateway/pkg/config"
	"github.com/foodhubhq/storefront-gateway/pkg/logger"
	"github.com/foodhubhq/storefront-gateway/pkg/metrics"
	"github.com/foodhubhq/storefront-gateway/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var closers []func() error
	defer func() {
		var closeErr error
		for _, closeFn := range closers {
			closeErr = multierr.Append(closeErr, closeFn())
		}
		if closeErr != nil {
			logg.Error(context.Background(), "error closing resources", closeErr)
		}
	}()

	// Cart storage: redis when configured, otherwise an in-process map
	// that only survives for the lifetime of the process.
	var storage cart.Storage
	var storagePinger controllers.Pinger
	if cfg.Redis.Configured() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
		storage = cart.NewRedisStorage(redisClient, cfg.Cart.EntryTTL)
		storagePinger = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, carts will not survive restarts")
		storage = cart.NewMemoryStorage()
	}

	backendClient, err := backend.New(cfg.Backend, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build backend client", err)
		os.Exit(1)
	}

	resolver, err := gate.NewHTTPResolver(backendClient, cfg.Backend.SessionPath)
	if err != nil {
		logg.Error(context.Background(), "failed to build session resolver", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	gateMetrics := metrics.NewGateMetrics(registry)
	cartMetrics := metrics.NewCartMetrics(registry)

	store := cart.NewStore(context.Background(), cfg.Cart.BaseKey, storage, logg, cartMetrics)

	catalogService, err := catalogsvc.NewService(backendClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build catalog service", err)
		os.Exit(1)
	}
	ordersService, err := orderssvc.NewService(backendClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build orders service", err)
		os.Exit(1)
	}
	checkoutService, err := checkoutsvc.NewService(backendClient, store)
	if err != nil {
		logg.Error(context.Background(), "failed to build checkout service", err)
		os.Exit(1)
	}
	usersService, err := userssvc.NewService(backendClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build users service", err)
		os.Exit(1)
	}
	providerService, err := providersvc.NewService(backendClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build provider service", err)
		os.Exit(1)
	}
	adminService, err := adminsvc.NewService(backendClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build admin service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		Resolver:    resolver,
		CartStore:   store,
		CartStorage: storagePinger,
		Catalog:     catalogService,
		Orders:      ordersService,
		Checkout:    checkoutService,
		Users:       usersService,
		Provider:    providerService,
		Admin:       adminService,
		HTTPMetrics: httpMetrics,
		GateMetrics: gateMetrics,
		Gatherer:    registry,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runCtx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting gateway server")

	server := api.NewServer(addr, router, logg)
	if err := server.Run(ctx); err != nil {
		logg.Error(runCtx, "gateway server stopped unexpectedly", err)
		os.Exit(1)
	}
}
