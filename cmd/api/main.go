package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unideals/unideals-backend/api/routes"
	"github.com/unideals/unideals-backend/internal/auth"
	"github.com/unideals/unideals-backend/internal/cart"
	"github.com/unideals/unideals-backend/internal/checkout"
	"github.com/unideals/unideals-backend/internal/clients"
	"github.com/unideals/unideals-backend/internal/notifications"
	"github.com/unideals/unideals-backend/internal/offers"
	"github.com/unideals/unideals-backend/internal/orders"
	"github.com/unideals/unideals-backend/internal/products"
	"github.com/unideals/unideals-backend/internal/suppliers"
	"github.com/unideals/unideals-backend/pkg/config"
	"github.com/unideals/unideals-backend/pkg/db"
	"github.com/unideals/unideals-backend/pkg/logger"
	"github.com/unideals/unideals-backend/pkg/metrics"
	"github.com/unideals/unideals-backend/pkg/migrate"
	"github.com/unideals/unideals-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	mailChain, err := notifications.NewChainFromConfig(cfg.Mail, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to assemble mail chain", err)
		os.Exit(1)
	}

	clientsRepo := clients.NewRepository(dbClient.DB())
	suppliersRepo := suppliers.NewRepository(dbClient.DB())
	productsRepo := products.NewRepository(dbClient.DB())
	offersRepo := offers.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)

	authService, err := auth.NewService(clientsRepo, suppliersRepo, cartRepo, redisClient, mailChain, cfg.JWT, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	productsService, err := products.NewService(productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	offersService, err := offers.NewService(offersRepo, productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create offers service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, clientsRepo, productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo, orderMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(
		dbClient,
		cartRepo,
		ordersRepo,
		clientsRepo,
		cfg.Delivery.OutsideFeeAmount(),
		logg,
		orderMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			HTTPMetrics: httpMetrics,

			AuthService:     authService,
			ClientsRepo:     clientsRepo,
			ProductsService: productsService,
			OffersService:   offersService,
			CartService:     cartService,
			CheckoutService: checkoutService,
			OrdersService:   ordersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
