package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verdantcare/dispensary-backend/api/controllers"
	"github.com/verdantcare/dispensary-backend/api/middleware"
	ordersvc "github.com/verdantcare/dispensary-backend/internal/orders"
	patientsvc "github.com/verdantcare/dispensary-backend/internal/patients"
	productsvc "github.com/verdantcare/dispensary-backend/internal/products"
	"github.com/verdantcare/dispensary-backend/pkg/config"
	"github.com/verdantcare/dispensary-backend/pkg/db"
	"github.com/verdantcare/dispensary-backend/pkg/enums"
	"github.com/verdantcare/dispensary-backend/pkg/logger"
	"github.com/verdantcare/dispensary-backend/pkg/metrics"
	pkgredis "github.com/verdantcare/dispensary-backend/pkg/redis"
)

// Dependencies bundles everything the router wires into handlers.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Idempotency pkgredis.IdempotencyStore
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics

	Products productsvc.Service
	Patients patientsvc.Service
	Orders   ordersvc.Service
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.DB, deps.Logger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(deps.Logger))
		if deps.Idempotency != nil {
			r.Use(middleware.Idempotency(deps.Idempotency, deps.Logger))
		}

		r.Get("/products", controllers.ListProducts(deps.Products, deps.Logger))

		r.Route("/patients", func(r chi.Router) {
			r.Get("/", controllers.ListPatients(deps.Patients, deps.Logger))
			r.With(middleware.RequireRole(enums.RoleAdmin.String(), deps.Logger)).
				Post("/", controllers.UpsertPatient(deps.Patients, deps.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.Orders, deps.Logger))
			r.Post("/", controllers.CreateOrder(deps.Orders, deps.Logger))
			r.Post("/{orderId}/status", controllers.UpdateOrderStatus(deps.Orders, deps.Logger))
		})

		r.Get("/dashboard/stats", controllers.DashboardStats(deps.Orders, deps.Logger))
	})

	return r
}
