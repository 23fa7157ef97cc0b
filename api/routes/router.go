package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/unideals/unideals-backend/api/controllers"
	"github.com/unideals/unideals-backend/api/middleware"
	"github.com/unideals/unideals-backend/internal/auth"
	"github.com/unideals/unideals-backend/internal/cart"
	"github.com/unideals/unideals-backend/internal/checkout"
	"github.com/unideals/unideals-backend/internal/clients"
	"github.com/unideals/unideals-backend/internal/offers"
	"github.com/unideals/unideals-backend/internal/orders"
	"github.com/unideals/unideals-backend/internal/products"
	"github.com/unideals/unideals-backend/pkg/config"
	"github.com/unideals/unideals-backend/pkg/db"
	"github.com/unideals/unideals-backend/pkg/enums"
	"github.com/unideals/unideals-backend/pkg/logger"
	"github.com/unideals/unideals-backend/pkg/metrics"
	"github.com/unideals/unideals-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics

	AuthService     auth.Service
	ClientsRepo     *clients.Repository
	ProductsService products.Service
	OffersService   offers.Service
	CartService     cart.Service
	CheckoutService checkout.Service
	OrdersService   orders.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/client", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).
			Post("/register", controllers.ClientRegister(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).
			Post("/verify", controllers.ClientVerify(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).
			Post("/set-password", controllers.ClientSetPassword(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).
			Post("/login", controllers.ClientLogin(d.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, enums.RoleClient, logg))

			r.Get("/products", controllers.BrowseProducts(d.ProductsService, logg))
			r.Get("/offers", controllers.BrowseOffers(d.OffersService, logg))

			r.Get("/profile", controllers.ClientProfile(d.ClientsRepo, logg))
			r.Put("/profile", controllers.ClientProfileUpdate(d.ClientsRepo, logg))

			r.Route("/panier", func(r chi.Router) {
				r.Get("/", controllers.PanierFetch(d.CartService, logg))
				r.Post("/add", controllers.PanierAddItem(d.CartService, logg))
				r.Put("/update", controllers.PanierUpdateItem(d.CartService, logg))
				r.Delete("/remove/{itemID}", controllers.PanierRemoveItem(d.CartService, logg))
				r.Post("/confirm", controllers.PanierConfirm(d.CheckoutService, logg))
			})

			r.Get("/orders", controllers.ClientOrders(d.OrdersService, logg))
		})
	})

	r.Route("/api/supplier", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).
			Post("/register", controllers.SupplierRegister(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).
			Post("/login", controllers.SupplierLogin(d.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, enums.RoleSupplier, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.SupplierProductList(d.ProductsService, logg))
				r.Post("/", controllers.SupplierProductCreate(d.ProductsService, logg))
				r.Put("/{productID}", controllers.SupplierProductUpdate(d.ProductsService, logg))
				r.Delete("/{productID}", controllers.SupplierProductDelete(d.ProductsService, logg))
			})

			r.Route("/offers", func(r chi.Router) {
				r.Get("/", controllers.SupplierOfferList(d.OffersService, logg))
				r.Post("/", controllers.SupplierOfferCreate(d.OffersService, logg))
				r.Put("/{offerID}", controllers.SupplierOfferUpdate(d.OffersService, logg))
				r.Delete("/{offerID}", controllers.SupplierOfferDelete(d.OffersService, logg))
			})

			r.Get("/orders", controllers.SupplierOrders(d.OrdersService, logg))
			r.Patch("/orders/{orderID}/status", controllers.SupplierOrderStatus(d.OrdersService, logg))
		})
	})

	return r
}
