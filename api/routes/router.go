package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopmallhq/shopmall-backend/api/controllers"
	"github.com/shopmallhq/shopmall-backend/api/middleware"
	"github.com/shopmallhq/shopmall-backend/internal/address"
	"github.com/shopmallhq/shopmall-backend/internal/auth"
	"github.com/shopmallhq/shopmall-backend/internal/cart"
	"github.com/shopmallhq/shopmall-backend/internal/categories"
	"github.com/shopmallhq/shopmall-backend/internal/products"
	"github.com/shopmallhq/shopmall-backend/internal/users"
	pkgauth "github.com/shopmallhq/shopmall-backend/pkg/auth"
	"github.com/shopmallhq/shopmall-backend/pkg/auth/session"
	"github.com/shopmallhq/shopmall-backend/pkg/config"
	"github.com/shopmallhq/shopmall-backend/pkg/db"
	"github.com/shopmallhq/shopmall-backend/pkg/logger"
	"github.com/shopmallhq/shopmall-backend/pkg/metrics"
	"github.com/shopmallhq/shopmall-backend/pkg/redis"
)

// Services bundles everything the router hands to controllers.
type Services struct {
	Auth          auth.Service
	Register      auth.RegisterService
	Users         users.Service
	Cart          cart.Service
	Catalog       products.Service
	AdminProducts products.AdminService
	Categories    categories.Service
	Addresses     address.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"db":    dbP,
			"redis": redisClient,
		}))
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Register, logg))
			r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoriesList(svcs.Categories, logg))
			r.Get("/{code}/products", controllers.CategoryProducts(svcs.Categories, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/hot", controllers.ProductsHot(svcs.Catalog, logg))
			r.Get("/discount", controllers.ProductsDiscount(svcs.Catalog, logg))
			r.Get("/best-selling", controllers.ProductsBestSelling(svcs.Catalog, logg))
			r.Get("/upcoming", controllers.ProductsUpcoming(svcs.Catalog, logg))
			r.Get("/{guid}", controllers.ProductDetail(svcs.Catalog, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))

			r.Get("/users/me", controllers.UserMe(svcs.Users, logg))

			r.Route("/cart/items", func(r chi.Router) {
				r.Get("/", controllers.CartItems(svcs.Cart, logg))
				r.Post("/", controllers.CartItemUpsert(svcs.Cart, logg))
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", controllers.AddressList(svcs.Addresses, logg))
				r.Post("/", controllers.AddressCreate(svcs.Addresses, logg))
				r.Get("/default", controllers.AddressDefault(svcs.Addresses, logg))
				r.Put("/{addressId}", controllers.AddressUpdate(svcs.Addresses, logg))
				r.Delete("/{addressId}", controllers.AddressDelete(svcs.Addresses, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/auth/login", controllers.AdminAuthLogin(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
			r.Use(middleware.RequireRole(pkgauth.RoleAdmin, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminProductList(svcs.AdminProducts, logg))
				r.Post("/", controllers.AdminProductCreate(svcs.AdminProducts, logg))
				r.Get("/{guid}", controllers.AdminProductGet(svcs.AdminProducts, logg))
				r.Put("/{guid}", controllers.AdminProductUpdate(svcs.AdminProducts, logg))
				r.Delete("/{guid}", controllers.AdminProductDelete(svcs.AdminProducts, logg))
			})
		})
	})

	return r
}
