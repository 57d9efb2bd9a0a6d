package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foodhubhq/storefront-gateway/api/controllers"
	"github.com/foodhubhq/storefront-gateway/api/middleware"
	adminsvc "github.com/foodhubhq/storefront-gateway/internal/admin"
	"github.com/foodhubhq/storefront-gateway/internal/cart"
	catalogsvc "github.com/foodhubhq/storefront-gateway/internal/catalog"
	checkoutsvc "github.com/foodhubhq/storefront-gateway/internal/checkout"
	"github.com/foodhubhq/storefront-gateway/internal/gate"
	orderssvc "github.com/foodhubhq/storefront-gateway/internal/orders"
	providersvc "github.com/foodhubhq/storefront-gateway/internal/provider"
	userssvc "github.com/foodhubhq/storefront-gateway/internal/users"
	"github.com/foodhubhq/storefront-gateway/pkg/config"
	"github.com/foodhubhq/storefront-gateway/pkg/logger"
	"github.com/foodhubhq/storefront-gateway/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	Resolver    gate.Resolver
	CartStore   *cart.Store
	CartStorage controllers.Pinger

	Catalog  catalogsvc.Service
	Orders   orderssvc.Service
	Checkout checkoutsvc.Service
	Users    userssvc.Service
	Provider providersvc.Service
	Admin    adminsvc.Service

	HTTPMetrics *metrics.HTTPMetrics
	GateMetrics *metrics.GateMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(cfg.CORS),
		middleware.Credentials(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.CartStorage))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		// The gate guards the protected storefront sections; /cart and
		// the public catalog stay outside it.
		r.Use(middleware.Gate(middleware.GateOptions{
			Prefixes:    cfg.Gate.Prefixes,
			StripPrefix: "/api",
		}, d.Resolver, d.GateMetrics, logg))

		r.Route("/meals", func(r chi.Router) {
			r.Get("/", controllers.ListMeals(d.Catalog, logg))
			r.Get("/{mealId}", controllers.GetMeal(d.Catalog, logg))
		})
		r.Get("/categories", controllers.ListCategories(d.Catalog, logg))
		r.Route("/providers", func(r chi.Router) {
			r.Get("/", controllers.ListProviders(d.Catalog, logg))
			r.Get("/{providerId}", controllers.GetProviderProfile(d.Catalog, logg))
		})
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", controllers.ListReviews(d.Catalog, logg))
			r.Post("/", controllers.SubmitReview(d.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartOwner(cfg.Guest, d.Resolver, logg))
			r.Get("/", controllers.GetCart(d.CartStore, logg))
			r.Delete("/", controllers.ClearCart(d.CartStore, logg))
			r.Post("/items", controllers.AddCartItem(d.CartStore, logg))
			r.Patch("/items/{mealId}", controllers.UpdateCartItem(d.CartStore, logg))
			r.Delete("/items/{mealId}", controllers.RemoveCartItem(d.CartStore, logg))
		})

		r.With(middleware.CartOwner(cfg.Guest, d.Resolver, logg)).
			Post("/checkout", controllers.Checkout(d.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListMyOrders(d.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(d.Orders, logg))
			r.Put("/{orderId}/cancel", controllers.CancelOrder(d.Orders, logg))
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.GetProfile(d.Users, logg))
			r.Put("/", controllers.UpdateProfile(d.Users, logg))
		})

		r.Route("/provider", func(r chi.Router) {
			r.Route("/profile", func(r chi.Router) {
				r.Get("/", controllers.ProviderProfile(d.Provider, logg))
				r.Post("/", controllers.ProviderUpsertProfile(d.Provider, logg))
			})
			r.Get("/meals", controllers.ProviderMeals(d.Provider, logg))
			r.Post("/meals", controllers.ProviderCreateMeal(d.Provider, logg))
			r.Put("/meals/{mealId}", controllers.ProviderUpdateMeal(d.Provider, logg))
			r.Delete("/meals/{mealId}", controllers.ProviderDeleteMeal(d.Provider, logg))
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListProviderOrders(d.Orders, logg))
				r.Put("/{orderId}/status", controllers.UpdateOrderStatus(d.Orders, logg))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/stats", controllers.AdminStats(d.Admin, logg))
			r.Get("/orders", controllers.ListAllOrders(d.Orders, logg))
			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.AdminListUsers(d.Admin, logg))
				r.Patch("/{userId}/status", controllers.AdminUpdateUserStatus(d.Admin, logg))
			})
			r.Route("/categories", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateCategory(d.Admin, logg))
				r.Put("/{categoryId}", controllers.AdminUpdateCategory(d.Admin, logg))
				r.Delete("/{categoryId}", controllers.AdminDeleteCategory(d.Admin, logg))
			})
		})
	})

	return r
}
